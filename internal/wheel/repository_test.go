package wheel

import (
	"testing"
)

func TestSaveAllocationAllDurable(t *testing.T) {
	saver := newScriptedSaver()
	gateway := NewGateway(saver, 3)

	var slots [slotTotal]uint16
	slots[1] = 10
	slots[36] = 5

	if errors := gateway.SaveAllocation("p1", slots); errors != 0 {
		t.Fatalf("全部成功时错误计数应为0, 实际 %d", errors)
	}
	if saver.saved[1] != 10 || saver.saved[36] != 5 {
		t.Errorf("写入的值不正确: %v", saver.saved)
	}
	if saver.attempts != SlotCount {
		t.Errorf("每个槽位应只尝试一次, 实际 %d 次", saver.attempts)
	}
}

func TestSaveAllocationRetriesUntilSuccess(t *testing.T) {
	// 第k次尝试成功时，错误计数应在k轮内归零且不会提前归零
	for failures := 1; failures <= 3; failures++ {
		saver := newScriptedSaver()
		saver.failures[7] = failures
		gateway := NewGateway(saver, 3)

		var slots [slotTotal]uint16
		slots[7] = 42

		if errors := gateway.SaveAllocation("p1", slots); errors != 0 {
			t.Errorf("失败 %d 次后重试应成功, 错误计数 %d", failures, errors)
		}
		if saver.saved[7] != 42 {
			t.Errorf("重试成功后应写入最终值: %v", saver.saved)
		}
		// 首轮一次 + 重试failures次
		expected := SlotCount + failures
		if saver.attempts != expected {
			t.Errorf("失败 %d 次时应尝试 %d 次, 实际 %d", failures, expected, saver.attempts)
		}
	}
}

func TestSaveAllocationReportsExhaustedRetries(t *testing.T) {
	saver := newScriptedSaver()
	saver.failures[3] = 100
	saver.failures[5] = 100
	gateway := NewGateway(saver, 3)

	var slots [slotTotal]uint16
	slots[3] = 1
	slots[5] = 2

	if errors := gateway.SaveAllocation("p1", slots); errors != 2 {
		t.Fatalf("重试耗尽后错误计数应为2, 实际 %d", errors)
	}
	if _, ok := saver.saved[3]; ok {
		t.Error("始终失败的槽位不应出现在持久层")
	}
	// 其余槽位不受影响
	if saver.saved[1] != 0 {
		t.Error("健康槽位应正常落库")
	}
}

func TestSaveAllocationMixedOutcome(t *testing.T) {
	saver := newScriptedSaver()
	saver.failures[2] = 1   // 第一次重试即成功
	saver.failures[4] = 100 // 永远失败
	gateway := NewGateway(saver, 3)

	var slots [slotTotal]uint16
	slots[2] = 20
	slots[4] = 40

	if errors := gateway.SaveAllocation("p1", slots); errors != 1 {
		t.Fatalf("应只剩1个未落库条目, 实际 %d", errors)
	}
	if saver.saved[2] != 20 {
		t.Error("可恢复的槽位应最终落库")
	}
}

func TestLoadAllocation(t *testing.T) {
	saver := newScriptedSaver()
	saver.stored = map[uint8]uint16{1: 10, 36: 5, 99: 7}
	gateway := NewGateway(saver, 3)

	slots, err := gateway.LoadAllocation("p1")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if slots[1] != 10 || slots[36] != 5 {
		t.Errorf("加载的值不正确: %v", slots[:])
	}
	// 越界的槽位被忽略
	if slots[0] != 0 {
		t.Error("下标0应保持为0")
	}
}

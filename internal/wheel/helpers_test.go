package wheel

import (
	"errors"
	"testing"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/config"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/kv"
)

func init() {
	config.Cfg = &config.Config{
		Wheel: config.WheelConfig{
			MinLevel:        50,
			PointsPerLevel:  1,
			SaveRetryPasses: 3,
			TickIntervalMs:  1000,
		},
	}
}

// fakeContext 是测试用的玩家上下文桩。
type fakeContext struct {
	uuid     string
	vocation Vocation
	level    uint32
	bones    uint64
	extra    uint16
	scrolls  uint16
	nearby   int
	inTemple bool
}

func (f *fakeContext) UUID() string             { return f.uuid }
func (f *fakeContext) Vocation() Vocation       { return f.vocation }
func (f *fakeContext) Level() uint32            { return f.level }
func (f *fakeContext) Bones() uint64            { return f.bones }
func (f *fakeContext) ExtraPoints() uint16      { return f.extra }
func (f *fakeContext) PromotionScrolls() uint16 { return f.scrolls }
func (f *fakeContext) NearbyCreatures() int     { return f.nearby }
func (f *fakeContext) InTempleRange() bool      { return f.inTemple }

func (f *fakeContext) SpendBones(amount uint64) bool {
	if f.bones < amount {
		return false
	}
	f.bones -= amount
	return true
}

// scriptedSaver 是测试用的持久层桩。
// failures 指定每个槽位在成功之前还要失败的次数。
type scriptedSaver struct {
	failures map[uint8]int
	saved    map[uint8]uint16
	stored   map[uint8]uint16
	attempts int
}

func newScriptedSaver() *scriptedSaver {
	return &scriptedSaver{
		failures: make(map[uint8]int),
		saved:    make(map[uint8]uint16),
	}
}

func (s *scriptedSaver) SaveSlot(playerUUID string, slot uint8, points uint16) error {
	s.attempts++
	if s.failures[slot] > 0 {
		s.failures[slot]--
		return errors.New("写入失败")
	}
	s.saved[slot] = points
	return nil
}

func (s *scriptedSaver) LoadSlots(playerUUID string) (map[uint8]uint16, error) {
	result := make(map[uint8]uint16, len(s.stored))
	for slot, points := range s.stored {
		result[slot] = points
	}
	return result, nil
}

// newTestWheel 创建一个绑定到桩上下文的引擎，使用内存KV存储。
func newTestWheel(t *testing.T, ctx *fakeContext) (*PlayerWheel, *scriptedSaver) {
	t.Helper()
	saver := newScriptedSaver()
	gateway := NewGateway(saver, config.Cfg.Wheel.SaveRetryPasses)
	w, err := NewPlayerWheel(ctx, kv.NewMemoryStore(), gateway)
	if err != nil {
		t.Fatalf("创建引擎失败: %v", err)
	}
	return w, saver
}

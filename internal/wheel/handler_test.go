package wheel

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/destiny-wheel-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

func newTestRouter(w *PlayerWheel) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/wheel"), func(c *gin.Context) *PlayerWheel { return w })
	return router
}

func postSave(t *testing.T, router *gin.Engine, body saveRequestBody) (*httptest.ResponseRecorder, []int) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/wheel/save", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var response struct {
		Accepted []int `json:"accepted"`
	}
	if recorder.Code == http.StatusOK {
		if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
			t.Fatalf("解析响应失败: %v", err)
		}
	}
	return recorder, response.Accepted
}

func TestSaveSlotsEnforcesWindowOptions(t *testing.T) {
	token.GenerateSecretKey()

	ctx := &fakeContext{uuid: "p1", level: 1000, inTemple: false}
	w, _ := newTestWheel(t, ctx)
	w.SetPointsBySlotType(1, 10)
	router := newTestRouter(w)

	signature, err := token.GenerateWheelSignature(token.WheelPayload{
		SessionID: "p1",
		OwnerID:   "p1",
	})
	if err != nil {
		t.Fatalf("生成签名失败: %v", err)
	}

	// 神殿范围外减点被拒绝，槽位保持原值
	recorder, accepted := postSave(t, router, saveRequestBody{
		OwnerID:   "p1",
		Signature: signature,
		Changes:   []SlotChange{{Slot: 1, Points: 2}},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("保存请求应返回200, 实际 %d", recorder.Code)
	}
	if len(accepted) != 0 {
		t.Errorf("范围外的减点应被拒绝, 实际接受 %v", accepted)
	}
	if got := w.GetPointsBySlotType(1); got != 10 {
		t.Errorf("槽位点数不应被修改, 实际 %d", got)
	}

	// 范围外加点照常接受
	_, accepted = postSave(t, router, saveRequestBody{
		OwnerID:   "p1",
		Signature: signature,
		Changes:   []SlotChange{{Slot: 1, Points: 20}},
	})
	if len(accepted) != 1 {
		t.Errorf("范围外的加点应被接受, 实际 %v", accepted)
	}

	// 进入神殿范围后减点被接受
	ctx.inTemple = true
	_, accepted = postSave(t, router, saveRequestBody{
		OwnerID:   "p1",
		Signature: signature,
		Changes:   []SlotChange{{Slot: 1, Points: 2}},
	})
	if len(accepted) != 1 {
		t.Errorf("范围内的减点应被接受, 实际 %v", accepted)
	}
	if got := w.GetPointsBySlotType(1); got != 2 {
		t.Errorf("槽位点数应为2, 实际 %d", got)
	}
}

func TestSaveSlotsRejectsBadSignature(t *testing.T) {
	token.GenerateSecretKey()

	ctx := &fakeContext{uuid: "p1", level: 1000, inTemple: true}
	w, _ := newTestWheel(t, ctx)
	router := newTestRouter(w)

	recorder, _ := postSave(t, router, saveRequestBody{
		OwnerID:   "p1",
		Signature: "bm90LWEtc2lnbmF0dXJl",
		Changes:   []SlotChange{{Slot: 1, Points: 1}},
	})
	if recorder.Code != http.StatusForbidden {
		t.Errorf("无效签名应返回403, 实际 %d", recorder.Code)
	}
}

package wheel

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/destiny-wheel-backend/internal/gem"
	"github.com/SlpAus/destiny-wheel-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// EngineResolver 从请求上下文解析出当前玩家的轮盘引擎。
// 未登录时返回nil，由路由装配方注入实现。
type EngineResolver func(c *gin.Context) *PlayerWheel

// 窗口操作码：0不可改点，1可加可减（神殿范围内），2只可加点。
const (
	optionsLocked       = uint8(0)
	optionsFull         = uint8(1)
	optionsIncreaseOnly = uint8(2)
)

// WindowResponse 是打开轮盘窗口时下发的完整载荷。
// 签名覆盖会话与所有者，保存请求必须原样带回。
type WindowResponse struct {
	OwnerID            string            `json:"ownerId"`
	Options            uint8             `json:"options"`
	Vocation           uint8             `json:"vocation"`
	Points             uint16            `json:"points"`
	ExtraPoints        uint16            `json:"extraPoints"`
	UnusedPoints       uint16            `json:"unusedPoints"`
	Slots              []uint16          `json:"slots"`
	PromotionScrolls   uint16            `json:"promotionScrolls"`
	GiftOfLifeCooldown int32             `json:"giftOfLifeCooldown"`
	Gems               []gem.GemResponse `json:"gems"`
	Signature          string            `json:"signature"`
}

type saveRequestBody struct {
	OwnerID   string       `json:"ownerId" binding:"required"`
	Signature string       `json:"signature" binding:"required"`
	Changes   []SlotChange `json:"changes" binding:"required"`
}

// RegisterRoutes 注册轮盘窗口相关的API路由。
func RegisterRoutes(rg *gin.RouterGroup, resolve EngineResolver) {
	rg.GET("", openWindow(resolve))
	rg.POST("/save", saveSlots(resolve))
	rg.GET("/mitigation", mitigation(resolve))
}

func requireEngine(c *gin.Context, resolve EngineResolver) *PlayerWheel {
	engine := resolve(c)
	if engine == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "玩家未登录"})
		return nil
	}
	return engine
}

// getOptions 返回窗口操作码。
// 请求者与所有者不一致时不可改点；神殿范围内可自由增减；
// 范围外只允许继续加点。
func getOptions(engine *PlayerWheel, ownerID string) uint8 {
	if engine.Owner().UUID() != ownerID {
		return optionsLocked
	}
	if engine.Owner().InTempleRange() {
		return optionsFull
	}
	return optionsIncreaseOnly
}

func openWindow(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		ownerID := c.Query("owner")
		if ownerID == "" {
			ownerID = engine.Owner().UUID()
		}

		signature, err := token.GenerateWheelSignature(token.WheelPayload{
			SessionID: engine.Owner().UUID(),
			OwnerID:   ownerID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "无法生成窗口签名"})
			return
		}

		vault := engine.Vault()
		gems := vault.RevealedGems()
		gemResponses := make([]gem.GemResponse, 0, len(gems))
		for _, g := range gems {
			gemResponses = append(gemResponses, gem.FormatGem(vault, g))
		}

		slots := engine.Slots()
		c.JSON(http.StatusOK, WindowResponse{
			OwnerID:            ownerID,
			Options:            getOptions(engine, ownerID),
			Vocation:           uint8(engine.Owner().Vocation()),
			Points:             engine.WheelPoints(false),
			ExtraPoints:        engine.ExtraPoints(),
			UnusedPoints:       engine.UnusedPoints(),
			Slots:              slots[1:],
			PromotionScrolls:   engine.Owner().PromotionScrolls(),
			GiftOfLifeCooldown: engine.GiftOfCooldown(),
			Gems:               gemResponses,
			Signature:          signature,
		})
	}
}

func saveSlots(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		var body saveRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}

		payload := token.WheelPayload{
			SessionID: engine.Owner().UUID(),
			OwnerID:   body.OwnerID,
		}
		if !token.ValidateWheelSignature(payload, body.Signature) {
			c.JSON(http.StatusForbidden, gin.H{"error": "窗口签名无效"})
			return
		}
		options := getOptions(engine, body.OwnerID)
		if options == optionsLocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "无权修改该轮盘"})
			return
		}

		// 神殿范围外的窗口只允许继续加点
		accepted := engine.SaveSlotChanges(body.Changes, options == optionsFull)
		if len(accepted) < len(body.Changes) {
			fmt.Printf("玩家 %s 的保存请求中有 %d 项改动被拒绝\n",
				engine.Owner().UUID(), len(body.Changes)-len(accepted))
		}
		c.JSON(http.StatusOK, gin.H{
			"accepted":     accepted,
			"unusedPoints": engine.UnusedPoints(),
		})
	}
}

func mitigation(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"mitigation": engine.CalculateMitigation(),
			"multiplier": engine.GetMitigationMultiplier(),
		})
	}
}

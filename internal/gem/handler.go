package gem

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Engine 是宝石接口对轮盘引擎的最小依赖。
// 宝石状态变化后需要触发一次完整重算，由引擎实现。
type Engine interface {
	Vault() *Vault
	ReloadPlayerData()
}

// EngineResolver 从请求上下文解析出当前玩家的轮盘引擎。
// 未登录或会话不存在时返回nil，由路由装配方注入实现。
type EngineResolver func(c *gin.Context) Engine

// --- API响应模型 ---

type GemResponse struct {
	UUID            string `json:"uuid"`
	Locked          bool   `json:"locked"`
	Affinity        uint8  `json:"affinity"`
	Quality         uint8  `json:"quality"`
	BasicModifier1  uint8  `json:"basicModifier1"`
	BasicModifier2  uint8  `json:"basicModifier2"`
	SupremeModifier uint8  `json:"supremeModifier"`
	Domain          uint8  `json:"domain"`
	Active          bool   `json:"active"`
}

type revealRequestBody struct {
	Quality uint8 `json:"quality" binding:"required"`
}

type indexRequestBody struct {
	Index *int `json:"index" binding:"required"`
}

type activeRequestBody struct {
	Affinity uint8 `json:"affinity"`
	Index    *int  `json:"index" binding:"required"`
}

// FormatGem 将宝石转换为API响应形态。
func FormatGem(v *Vault, g Gem) GemResponse {
	return GemResponse{
		UUID:            g.UUID,
		Locked:          g.Locked,
		Affinity:        uint8(g.Affinity),
		Quality:         uint8(g.Quality),
		BasicModifier1:  uint8(g.BasicModifier1),
		BasicModifier2:  uint8(g.BasicModifier2),
		SupremeModifier: uint8(g.SupremeModifier),
		Domain:          uint8(v.GemDomain(g.UUID)),
		Active:          v.ActiveGemIndex(g.Affinity) == v.GetGemIndex(g.UUID),
	}
}

// RegisterRoutes 注册宝石相关的API路由。
func RegisterRoutes(rg *gin.RouterGroup, resolve EngineResolver) {
	rg.GET("", listGems(resolve))
	rg.POST("/reveal", revealGem(resolve))
	rg.POST("/destroy", destroyGem(resolve))
	rg.POST("/switch", switchGemDomain(resolve))
	rg.POST("/lock", toggleGemLock(resolve))
	rg.POST("/active", setActiveGem(resolve))
	rg.DELETE("/active/:affinity", removeActiveGem(resolve))
}

// requireEngine 解析引擎，未登录时直接写出401响应。
func requireEngine(c *gin.Context, resolve EngineResolver) Engine {
	engine := resolve(c)
	if engine == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "玩家未登录"})
		return nil
	}
	return engine
}

func listGems(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}
		vault := engine.Vault()

		gems := vault.RevealedGems()
		responses := make([]GemResponse, 0, len(gems))
		for _, g := range gems {
			responses = append(responses, FormatGem(vault, g))
		}
		c.JSON(http.StatusOK, responses)
	}
}

func revealGem(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		var body revealRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}

		quality := Quality(body.Quality)
		if quality < QualityLesser || quality > QualityGreater {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的宝石品质"})
			return
		}

		vault := engine.Vault()
		g, ok := vault.RevealGem(quality)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"revealed": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"revealed": true, "gem": FormatGem(vault, g)})
	}
}

func destroyGem(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		var body indexRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}

		ok := engine.Vault().DestroyGem(*body.Index)
		if ok {
			engine.ReloadPlayerData()
		}
		c.JSON(http.StatusOK, gin.H{"destroyed": ok})
	}
}

func switchGemDomain(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		var body indexRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}

		ok := engine.Vault().SwitchGemDomain(*body.Index)
		if ok {
			engine.ReloadPlayerData()
		}
		c.JSON(http.StatusOK, gin.H{"switched": ok})
	}
}

func toggleGemLock(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		var body indexRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}

		ok := engine.Vault().ToggleGemLock(*body.Index)
		c.JSON(http.StatusOK, gin.H{"toggled": ok})
	}
}

func setActiveGem(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		var body activeRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}
		if body.Affinity >= uint8(AffinityCount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的宝石亲和"})
			return
		}

		ok := engine.Vault().SetActiveGem(Affinity(body.Affinity), *body.Index)
		if ok {
			engine.ReloadPlayerData()
		}
		c.JSON(http.StatusOK, gin.H{"activated": ok})
	}
}

func removeActiveGem(resolve EngineResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine := requireEngine(c, resolve)
		if engine == nil {
			return
		}

		affinity, ok := parseAffinityParam(c.Param("affinity"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的宝石亲和"})
			return
		}

		engine.Vault().RemoveActiveGem(affinity)
		engine.ReloadPlayerData()
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

func parseAffinityParam(raw string) (Affinity, bool) {
	if len(raw) != 1 || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	value := Affinity(raw[0] - '0')
	if value >= AffinityCount {
		return 0, false
	}
	return value, true
}

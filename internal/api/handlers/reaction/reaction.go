package reaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"green-chemistry-helper/internal/core/chemistry"
	"green-chemistry-helper/internal/core/reaction"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReactionRequest 反應分析請求，溫度可為字串或數字
type ReactionRequest struct {
	Reactants   string           `json:"reactants"`
	Products    string           `json:"products"`
	Solvent     string           `json:"solvent"`
	Catalyst    string           `json:"catalyst"`
	Temperature temperatureField `json:"temperature"`
}

// Input 轉換為引擎輸入
func (r ReactionRequest) Input() chemistry.ReactionInput {
	return chemistry.ReactionInput{
		Reactants:   r.Reactants,
		Products:    r.Products,
		Solvent:     r.Solvent,
		Catalyst:    r.Catalyst,
		Temperature: string(r.Temperature),
	}
}

// temperatureField 接受 "25" 或 25
type temperatureField string

func (t *temperatureField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = temperatureField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("temperature must be a string or number")
	}
	*t = temperatureField(n.String())
	return nil
}

// PredictResponse 產物預測回應
type PredictResponse struct {
	PredictedProduct string `json:"predicted_product"`
}

// SolventInfo 溶劑資訊
type SolventInfo struct {
	Name         string   `json:"name"`
	Hazardous    bool     `json:"hazardous"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Handler 反應分析處理程序
type Handler struct {
	service   *reaction.Service
	publicURL string
}

// NewHandler 創建新的反應分析處理程序
func NewHandler(service *reaction.Service, publicURL string) *Handler {
	return &Handler{
		service:   service,
		publicURL: publicURL,
	}
}

// HandleAnalyze 分析反應並保存報告
func (h *Handler) HandleAnalyze(c *gin.Context) {
	requestID := requestid.Get(c)

	req, ok := bindRequest(c)
	if !ok {
		return
	}

	r, err := h.service.Analyze(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, "反應分析失敗", err)
		return
	}

	common.LogInfo("反應分析請求完成",
		zap.String("request_id", requestID),
		zap.String("report_id", r.ID),
		zap.String("eco_rating", string(r.Result.EcoRating)),
	)

	c.JSON(http.StatusOK, r)
}

// HandlePredict 預測產物
func (h *Handler) HandlePredict(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	product, err := h.service.Predict(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, "產物預測失敗", err)
		return
	}

	c.JSON(http.StatusOK, PredictResponse{PredictedProduct: product})
}

// HandleGet 取得報告
func (h *Handler) HandleGet(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "取得報告失敗", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleExport 以附件形式下載報告
func (h *Handler) HandleExport(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "取得報告失敗", err)
		return
	}

	doc, err := report.Render(r, c.Query("format"))
	if err != nil {
		respondError(c, "報告匯出失敗", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// HandleShare 產生分享連結，未指定 url 時使用結果頁網址
func (h *Handler) HandleShare(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "取得報告失敗", err)
		return
	}

	pageURL := strings.TrimSpace(c.Query("url"))
	if pageURL == "" {
		pageURL = h.resultURL(r.ID)
	}

	c.JSON(http.StatusOK, report.NewShareLinks(r.Result.EcoRating, pageURL))
}

// HandleSolvents 列出可選溶劑
func (h *Handler) HandleSolvents(c *gin.Context) {
	solvents := make([]SolventInfo, 0, len(chemistry.Solvents))
	for _, name := range chemistry.Solvents {
		alternatives, hazardous := chemistry.SolventAlternatives(name)
		solvents = append(solvents, SolventInfo{
			Name:         name,
			Hazardous:    hazardous,
			Alternatives: alternatives,
		})
	}
	c.JSON(http.StatusOK, gin.H{"solvents": solvents})
}

// HandleCatalysts 列出會被標記的有害催化劑關鍵字與替代品
func (h *Handler) HandleCatalysts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"catalysts": chemistry.HazardousCatalysts()})
}

func (h *Handler) resultURL(id string) string {
	u, err := url.Parse(h.publicURL)
	if err != nil || h.publicURL == "" {
		return id
	}
	q := u.Query()
	q.Set("id", id)
	u.RawQuery = q.Encode()
	return u.String()
}

// bindRequest 解析請求體，失敗時直接回應 400
func bindRequest(c *gin.Context) (ReactionRequest, bool) {
	var req ReactionRequest
	if err := common.DecodeJSONStrict(c.Request.Body, &req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
				Code:    common.ErrCodeRequestTooLarge,
				Message: common.ErrRequestTooLarge.Message,
			})
			return req, false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: common.ErrInvalidRequest.Message,
			Details: err.Error(),
		})
		return req, false
	}
	return req, true
}

// respondError 依錯誤類型回應並記錄
func respondError(c *gin.Context, msg string, err error) {
	status, resp := common.NewErrorResponse(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("request_id", requestid.Get(c)),
		zap.Int("status", status),
	}
	if status >= http.StatusInternalServerError {
		common.LogError(msg, fields...)
	} else {
		common.LogWarn(msg, fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

package route

import (
	"net/http"

	"git.thinkinpower.net/ccform/cardtype"
	"git.thinkinpower.net/ccform/emit"
	"git.thinkinpower.net/ccform/form"
	"git.thinkinpower.net/ccform/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

type CardHandler struct {
	registry  *cardtype.Registry
	validator *form.Validator
	emitter   *emit.Emitter
}

func NewCardHandler(registry *cardtype.Registry, validator *form.Validator, emitter *emit.Emitter) *CardHandler {
	return &CardHandler{registry: registry, validator: validator, emitter: emitter}
}

func (h *CardHandler) classify(ctx *gin.Context) {
	t, ok := cardtype.Classify(h.registry, ctx.Param("number"))
	if !ok {
		ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeNotFound, Msg: "unknown card type"})
		return
	}
	def, _ := h.registry.Lookup(t)
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "success"},
		Data:          mod.CardTypeData{Type: t.String(), Name: def.Name()}})
}

func (h *CardHandler) checksum(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "success"},
		Data:          mod.ChecksumData{Valid: cardtype.IsValidChecksum(ctx.Param("number"))}})
}

func (h *CardHandler) bind(ctx *gin.Context) (mod.CardDetails, bool) {
	var details mod.CardDetails
	if err := ctx.ShouldBindJSON(&details); err != nil {
		logger.Warnf("bind card details failed: %s", err)
		ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeMissingParams, Msg: "cannot parse request body"})
		return details, false
	}
	return details, true
}

func validationData(result form.Result) mod.ValidationData {
	return mod.ValidationData{Valid: result.Valid(), CardType: result.CardType.String(), Errors: result.Errors}
}

func (h *CardHandler) validate(ctx *gin.Context) {
	details, ok := h.bind(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "success"},
		Data:          validationData(h.validator.Validate(details))})
}

func (h *CardHandler) save(ctx *gin.Context) {
	details, ok := h.bind(ctx)
	if !ok {
		return
	}
	result := h.validator.Validate(details)
	if !result.Valid() {
		ctx.JSON(http.StatusOK, mod.ResponseData{
			ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeInvalidParams, Msg: "invalid card details"},
			Data:          validationData(result)})
		return
	}
	h.emitter.Emit(details)
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "success"},
		Data:          validationData(result)})
}

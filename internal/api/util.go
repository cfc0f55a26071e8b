package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/service"
)

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys and drops the GORM
// primary key, which clients never address directly except on decks.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{"CreatedAt": "created_at", "UpdatedAt": "updated_at", "ID": "id"} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		delete(vv, "DeletedAt")
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes the GORM keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// writeModel replies with v after normalizing GORM keys.
func writeModel(c *gin.Context, status int, v interface{}, failMsg string) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: failMsg})
		return
	}
	c.JSON(status, out)
}

// queryLimit reads ?limit=N within (0, max], falling back to def.
func queryLimit(c *gin.Context, def, max int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= max {
			return n
		}
	}
	return def
}

// matchErrorResponse maps service and engine errors to a status and body.
func matchErrorResponse(err error) (int, gin.H) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		return http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound}
	case errors.Is(err, service.ErrPlayerNotInMatch):
		return http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch}
	case errors.Is(err, engine.ErrGameOver):
		return http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyFinished}
	case errors.Is(err, engine.ErrUnknownAction):
		return http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownActionType}
	case errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrUnknownSeat),
		errors.Is(err, engine.ErrCardNotInHand),
		errors.Is(err, engine.ErrNotEnoughMana),
		errors.Is(err, engine.ErrBoardFull),
		errors.Is(err, engine.ErrInvalidAttacker),
		errors.Is(err, engine.ErrInvalidTarget),
		errors.Is(err, engine.ErrTauntBlocks):
		return http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionRejected, constants.JSONKeyDetails: err.Error()}
	default:
		return http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrActionRejected, constants.JSONKeyDetails: err.Error()}
	}
}

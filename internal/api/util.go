package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/service"
	"github.com/0shq/ddc/internal/wallet"
	"github.com/gin-gonic/gin"
)

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys so clients
// consistently receive snake_case timestamps. The embedded gorm ID is
// renamed to id as well.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{"CreatedAt": "created_at", "UpdatedAt": "updated_at", "DeletedAt": "deleted_at", "ID": "id"} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
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
// into an interface{} and normalizes timestamp keys to snake_case.
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

// respondSnake writes v with snake_case timestamps, or fallbackErr as a 500.
func respondSnake(c *gin.Context, status int, v interface{}, fallbackErr string) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallbackErr})
		return
	}
	c.JSON(status, out)
}

// queryLimit reads ?limit=N within [1,max], falling back to def.
func queryLimit(c *gin.Context, def, max int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= max {
			return n
		}
	}
	return def
}

// writeServiceError maps service and wallet sentinels to HTTP statuses.
// Anything unknown is logged and reported as fallback with a 500.
func writeServiceError(c *gin.Context, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, wallet.ErrWalletNotConnected):
		status, msg = http.StatusUnauthorized, constants.ErrWalletNotConnected
	case errors.Is(err, wallet.ErrNoNFTSelected):
		status, msg = http.StatusConflict, constants.ErrNoNFTSelected
	case errors.Is(err, wallet.ErrAlreadyConnected):
		status, msg = http.StatusConflict, constants.ErrAlreadyConnected
	case errors.Is(err, wallet.ErrInvalidAddress):
		status, msg = http.StatusBadRequest, constants.ErrInvalidAddress
	case errors.Is(err, service.ErrNFTNotOwned):
		status, msg = http.StatusForbidden, constants.ErrNFTNotOwned
	case errors.Is(err, service.ErrNFTNotFound):
		status, msg = http.StatusNotFound, constants.ErrNFTNotFound
	case errors.Is(err, service.ErrOpponentIsSelf):
		status, msg = http.StatusBadRequest, constants.ErrOpponentIsSelf
	case errors.Is(err, service.ErrInvalidNFTName):
		status, msg = http.StatusBadRequest, constants.ErrInvalidNFTName
	case errors.Is(err, service.ErrInvalidRarity):
		status, msg = http.StatusBadRequest, constants.ErrInvalidRarity
	case errors.Is(err, service.ErrDuplicateNFTName):
		status, msg = http.StatusConflict, constants.ErrDuplicateNFTName
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldWallet: walletFromContext(c), "path": c.FullPath()})
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}

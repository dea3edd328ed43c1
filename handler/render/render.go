package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"dsc/core"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.Errorln(err)
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	if err := enc.Encode(H{"code": errCode, "msg": err.Error()}); err != nil {
		logrus.Errorln(err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// Err write engine error, status derived from the error code
func Err(w http.ResponseWriter, err error) {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
		return
	}

	Error(w, statusOf(code), int(code), err)
}

func statusOf(code core.ErrorCode) int {
	switch code {
	case core.ErrAmountMustBeMoreThanZero, core.ErrNotAllowedToken, core.ErrAmountOverflow:
		return http.StatusBadRequest
	case core.ErrStalePrice, core.ErrInvalidPriceFeed:
		return http.StatusServiceUnavailable
	case core.ErrReentrantCall:
		return http.StatusConflict
	case core.ErrUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

package router

import (
	"net/http"

	mw "github.com/5w1tchy/smart-library-api/internal/api/middlewares"
	"github.com/5w1tchy/smart-library-api/internal/metrics"
	"github.com/5w1tchy/smart-library-api/pkg/utils"
	"go.uber.org/zap"
)

type StackOptions struct {
	Log            *zap.Logger
	Metrics        *metrics.Metrics
	CORSOrigins    []string
	MaxBodySize    int64
	StrictSecurity bool
	APIVersion     string
}

// Secure wraps the mux in the middleware chain. Listed innermost first;
// Metrics must stay next to the mux to see the matched pattern.
func Secure(mux http.Handler, o StackOptions) http.Handler {
	inner := []utils.Middleware{}
	if o.Metrics != nil {
		inner = append(inner, mw.Metrics(o.Metrics))
	}
	return utils.ApplyMiddleware(
		utils.ApplyMiddleware(mux, inner...),
		mw.Compression,
		mw.BodySizeLimit(o.MaxBodySize),
		mw.HPP(mw.DefaultHPPOptions()),
		mw.CORS(o.CORSOrigins, o.Log),
		mw.SecurityHeaders(mw.SecurityOptions{Strict: o.StrictSecurity, APIVersion: o.APIVersion}),
		mw.ResponseTime,
		mw.Recovery(o.Log),
		mw.AccessLog(o.Log),
		mw.RequestID,
	)
}

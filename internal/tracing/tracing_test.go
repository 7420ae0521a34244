package tracing

import (
	"context"
	"testing"

	"github.com/johanneslochmann/qtorm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.TraceConfig
		wantErr bool
	}{
		{
			name: "no exporter",
			cfg:  config.TraceConfig{ServiceName: "qtorm"},
		},
		{
			name: "zipkin",
			cfg:  config.TraceConfig{Exporter: "zipkin", ServiceName: "qtorm"},
		},
		{
			name: "jaeger",
			cfg: config.TraceConfig{
				Exporter:    "jaeger",
				Endpoint:    "http://localhost:14268/api/traces",
				ServiceName: "qtorm",
			},
		},
		{
			name:    "unknown",
			cfg:     config.TraceConfig{Exporter: "stdout"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tp, err := NewProvider(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, span := tp.Tracer("test").Start(context.Background(), "span")
			assert.True(t, span.SpanContext().IsValid())
			span.End()
			// 没有 collector 的时候导出会失败，这里只关心能否正常关闭
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_ = tp.Shutdown(ctx)
		})
	}
}

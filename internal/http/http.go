package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HTTP struct {
	logger *zap.Logger
	host   string
	port   string
	server *http.Server
}

func NewHTTP(logger *zap.Logger, host string, port string, handler http.Handler) *HTTP {
	return &HTTP{
		logger: logger,
		host:   host,
		port:   port,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (this *HTTP) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%s", this.host, this.port))
	if err != nil {
		return err
	}

	go func() {
		this.logger.Info("HTTP server started", zap.String("addr", listener.Addr().String()))
		err := this.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			this.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	return nil
}

func (this *HTTP) Stop(ctx context.Context) error {
	err := this.server.Shutdown(ctx)
	if err != nil {
		return err
	}
	this.logger.Info("HTTP server stopped gracefully")
	return nil
}

package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/interfaces"
	log "github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

type ServiceOpts struct {
	Address string
	App     *application.Config
}

func (o ServiceOpts) validate() error {
	if o.Address == "" {
		return fmt.Errorf("missing listening address")
	}
	if o.App == nil {
		return fmt.Errorf("missing app config")
	}
	return o.App.Validate()
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              opts.Address,
			Handler:           NewRouter(opts.App),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http interface stopped unexpectedly")
		}
	}()

	log.Infof("http interface is listening on %s", lis.Addr())
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
	}
	log.Debug("disabled http interface")
}

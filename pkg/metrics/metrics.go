// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsConfig struct {
	Host   string
	Port   int
	Path   string
	Enable bool
}

func (c *MetricsConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 9090
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

// Server exposes a private prometheus registry on its own port.
type Server struct {
	config   MetricsConfig
	server   *http.Server
	registry *prometheus.Registry
}

func NewServer(config MetricsConfig) *Server {
	config.SetDefaults()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(buildInfo())

	mux := http.NewServeMux()
	mux.Handle(config.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	return &Server{
		config:   config,
		registry: registry,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// buildInfo is a constant 1 labelled with the running build.
func buildInfo() prometheus.Collector {
	v := version.GetVersion()
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information of the running binary.",
		ConstLabels: prometheus.Labels{
			"version":    v.Version,
			"commit":     v.ShortCommit(),
			"go_version": v.GoVersion,
		},
	})
	g.Set(1)
	return g
}

func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Serve blocks until the server stops. It returns nil right away when metrics are disabled.
func (s *Server) Serve() error {
	if !s.config.Enable {
		log.Info("metrics server is disabled")
		return nil
	}

	log.Infow("metrics server started", "address", s.server.Addr, "path", s.config.Path)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.config.Enable {
		return nil
	}
	return s.server.Shutdown(ctx)
}

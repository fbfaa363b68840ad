// Package server runs the HTTP endpoint hosting platforms poll to keep the bot alive.
package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
)

const RunningMessage = "Sweeper is running!"

// GuildLister is satisfied by store.GuildStore.
type GuildLister interface {
	Guilds(ctx context.Context) ([]discord.Guild, error)
}

type Server struct {
	guilds GuildLister
	start  time.Time

	srv *http.Server
}

func New(port string, guilds GuildLister) *Server {
	s := &Server{
		guilds: guilds,
		start:  time.Now(),
	}

	s.srv = &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/status", s.status)

	return r
}

// Listen starts serving in the background. An error is returned if the port can't be bound.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %v", s.srv.Addr)
	}

	log.Infof("Keep-alive server listening on %v", ln.Addr())

	go func() {
		err := s.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("serving http: %v", err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, RunningMessage)
}

type statusResponse struct {
	Version string `json:"version"`

	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	Guilds int `json:"guilds"`

	Memory      string `json:"memory,omitempty"`
	MemoryBytes uint64 `json:"memory_bytes,omitempty"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Version:       common.Version(),
		Uptime:        strings.TrimSpace(humanize.RelTime(s.start, time.Now(), "", "")),
		UptimeSeconds: time.Since(s.start).Seconds(),
	}

	gs, err := s.guilds.Guilds(r.Context())
	if err != nil {
		log.Errorf("listing guilds for status: %v", err)
	}
	resp.Guilds = len(gs)

	if rss, err := processMemory(r.Context()); err == nil {
		resp.Memory = humanize.Bytes(rss)
		resp.MemoryBytes = rss
	} else {
		log.Debugf("getting process memory: %v", err)
	}

	render.JSON(w, r, resp)
}

func processMemory(ctx context.Context) (uint64, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

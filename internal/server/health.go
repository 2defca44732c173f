package server

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	checkHealthy     = "healthy"
	checkUnhealthy   = "unhealthy"
	checkUnavailable = "unavailable"
	readinessTimeout = 5 * time.Second
)

// LivenessCheck answers as long as the process is serving requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "up", "time": time.Now()})
}

// ReadinessCheck probes the database, Redis and the upload directory in
// parallel. Redis is optional, so a server without it reports "unavailable"
// and stays ready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	probes := map[string]func(context.Context) error{
		"database": s.pingDatabase,
		"storage":  s.probeUploads,
	}
	if s.redis != nil {
		probes["redis"] = func(ctx context.Context) error { return s.redis.Ping(ctx).Err() }
	}

	var mu sync.Mutex
	checks := fiber.Map{"redis": checkUnavailable}
	healthy := true
	var g errgroup.Group
	for name, probe := range probes {
		g.Go(func() error {
			result := checkHealthy
			if probe(ctx) != nil {
				result = checkUnhealthy
			}
			mu.Lock()
			defer mu.Unlock()
			checks[name] = result
			healthy = healthy && result == checkHealthy
			return nil
		})
	}
	_ = g.Wait()

	status, overall := fiber.StatusOK, checkHealthy
	if !healthy {
		status, overall = fiber.StatusServiceUnavailable, checkUnhealthy
	}
	return c.Status(status).JSON(fiber.Map{"status": overall, "checks": checks, "time": time.Now()})
}

func (s *Server) pingDatabase(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// probeUploads checks that applicant files can still be written.
func (s *Server) probeUploads(context.Context) error {
	dir := s.uploads.Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	return errors.Join(f.Close(), os.Remove(f.Name()))
}

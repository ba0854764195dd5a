package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/localrank/insight-server/internal/config"
	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/internal/tools"
	"github.com/localrank/insight-server/pkg/localrank"
)

// initService builds the LocalRank client and the tool service from
// configuration. observe is the optional upstream metrics hook; the
// one-shot CLI path passes nil.
func initService(c *config.Config, observe func(endpoint string, status int)) (*tools.Service, error) {
	opts := []localrank.Option{
		localrank.WithBaseURL(c.API.BaseURL),
		localrank.WithTimeout(time.Duration(c.API.TimeoutSecs) * time.Second),
		localrank.WithRateLimit(c.API.RateLimit, c.API.RateBurst),
	}
	if observe != nil {
		opts = append(opts, localrank.WithObserver(observe))
	}
	api := localrank.NewClient(opts...)

	var playbook *insight.Playbook
	if c.Insight.Playbook != "" {
		pb, err := insight.LoadPlaybook(c.Insight.Playbook)
		if err != nil {
			return nil, eris.Wrapf(err, "load playbook %s", c.Insight.Playbook)
		}
		playbook = pb
		zap.L().Info("playbook loaded", zap.String("path", c.Insight.Playbook))
	}

	return tools.NewService(api, tools.Options{
		StableBand:    c.Insight.StableBand,
		ScanPageLimit: c.Insight.ScanPageLimit,
		ShareBaseURL:  c.Share.BaseURL,
		Playbook:      playbook,
	}), nil
}

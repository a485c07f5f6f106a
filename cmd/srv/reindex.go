package main

import (
	"errors"

	"github.com/overflow-lab/backend/config"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startReindex(*cli.Context) error {
	if s.configs.Search.Engine != config.BleveSearchEngine {
		return errors.New("reindex requires the bleve search engine")
	}

	s.loadDatabase()
	s.loadSearchIndex()
	s.loadRepos()
	s.loadDomains()
	defer s.close()

	n, err := s.searchDomain.Reindex(s.ctx)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Reindexed %d posts", n)
	return nil
}

package runner

import (
	"errors"
	"fmt"
	"log/slog"

	"crosslist/internal/config"
	"crosslist/internal/export"
	"crosslist/internal/listing"
	"crosslist/internal/logging"
)

// exportSet is everything loadExports learned about this run's inputs.
type exportSet struct {
	byPlatform map[listing.Platform][]listing.Record
	results    map[string]export.Result

	// breaches are data-quality findings surfaced in the run summary.
	breaches []string
}

func (s *exportSet) has(name string) bool {
	_, ok := s.byPlatform[listing.Platform(name)]
	return ok
}

// loadExports reads the newest export of every configured marketplace. A
// single unreadable export degrades that marketplace and is reported as a
// breach; only when no export at all is readable does the run abort.
func (r *Runner) loadExports(log *slog.Logger) (*exportSet, error) {
	set := &exportSet{
		byPlatform: make(map[listing.Platform][]listing.Record),
		results:    make(map[string]export.Result),
	}

	for _, platform := range r.cfg.Platforms {
		result, err := r.loadPlatform(platform)
		if err != nil {
			log.Warn("export unreadable, marketplace degraded",
				logging.String("platform", platform.Name),
				logging.Error(err))
			set.breaches = append(set.breaches, fmt.Sprintf("%s export unreadable: %v", platform.Name, err))
			continue
		}

		log.Info("export loaded",
			logging.String("platform", platform.Name),
			logging.Int("rows", result.RowCount),
			logging.Int("keyless", result.UnmatchedKey),
			logging.String("encoding", result.Encoding))

		if ceiling := r.cfg.Limits.ExportRowCeiling; ceiling > 0 && result.RowCount > ceiling {
			set.breaches = append(set.breaches,
				fmt.Sprintf("%s export has %d rows, ceiling is %d", platform.Name, result.RowCount, ceiling))
		}
		set.byPlatform[listing.Platform(platform.Name)] = result.Records
		set.results[platform.Name] = result
	}

	if len(set.byPlatform) == 0 {
		return nil, errors.New("no marketplace export could be read")
	}
	return set, nil
}

func (r *Runner) loadPlatform(platform config.Platform) (export.Result, error) {
	path, err := export.LatestFile(platform.ExportGlob)
	if err != nil {
		return export.Result{}, err
	}

	mapping := listing.CodeStatusMapping()
	if platform.StatusStyle == config.StatusStyleLabel {
		mapping = listing.LabelStatusMapping()
	}

	return export.Load(path, export.Options{
		Platform:              listing.Platform(platform.Name),
		Mapping:               mapping,
		TitleSuffixes:         platform.TitleSuffixes,
		RequireFieldAgreement: platform.RequireFieldAgreement,
	})
}

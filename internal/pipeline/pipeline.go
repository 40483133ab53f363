// Package pipeline orchestrates the find and generate workflows: posting
// discovery through extraction and persistence, and profile through tailored
// PDF.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/antoine/hireme/internal/extraction"
	"github.com/antoine/hireme/internal/llm"
	"github.com/antoine/hireme/internal/logger"
	"github.com/antoine/hireme/internal/profile"
	"github.com/antoine/hireme/internal/rendering"
	"github.com/antoine/hireme/internal/scraping"
	"github.com/antoine/hireme/internal/store"
	"github.com/antoine/hireme/internal/tailoring"
	"github.com/antoine/hireme/internal/types"
)

// maxConcurrentPostings bounds how many postings are extracted in parallel.
const maxConcurrentPostings = 4

// Pipeline wires the sources, agents and stores together.
type Pipeline struct {
	Client  llm.Client
	Files   *store.FileStore
	DB      *store.DB
	Sources []scraping.Source
	Log     *zap.Logger
}

// FindResult summarizes one find run.
type FindResult struct {
	Discovered int
	Extracted  int
	Skipped    int
	Failed     int
}

// RunFind searches all sources, then extracts and persists each discovered
// posting. A failing source or posting is logged and skipped; the run only
// fails when nothing could be discovered at all.
func (p *Pipeline) RunFind(ctx context.Context, query, location string, limit int) (*FindResult, error) {
	var postings []scraping.Posting
	for _, source := range p.Sources {
		found, err := source.Search(ctx, query, location, limit)
		if err != nil {
			p.Log.Warn("source failed",
				zap.String("source", source.Name()),
				zap.Error(err))
			continue
		}
		p.Log.Info("source searched",
			zap.String("source", source.Name()),
			zap.Int("postings", len(found)))
		postings = append(postings, found...)
	}

	result := &FindResult{Discovered: len(postings)}
	if len(postings) == 0 {
		return result, fmt.Errorf("no postings discovered for query %q", query)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPostings)

	outcomes := make([]outcome, len(postings))

	for i, posting := range postings {
		g.Go(func() error {
			outcomes[i] = p.processPosting(gctx, posting)
			return nil
		})
	}
	// Worker errors are folded into outcomes; Wait only observes ctx cancellation.
	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, o := range outcomes {
		switch o {
		case outcomeExtracted:
			result.Extracted++
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Failed++
		}
	}
	return result, nil
}

type outcome int

const (
	outcomeExtracted outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (p *Pipeline) processPosting(ctx context.Context, posting scraping.Posting) outcome {
	log := p.Log.With(
		zap.String("source", posting.Source),
		zap.String("url", posting.URL))

	details, err := extraction.Extract(ctx, p.Client, posting.RawText)
	if err != nil {
		var notAPosting *extraction.NotAPostingError
		if errors.As(err, &notAPosting) {
			log.Info("skipped: not a job posting",
				zap.String("reason", notAPosting.Reason))
			return outcomeSkipped
		}
		log.Warn("extraction failed", zap.Error(err))
		return outcomeFailed
	}

	existing, err := p.DB.FindByTitleCompany(ctx, details.Title, details.Company.Name)
	if err != nil {
		log.Warn("dedup lookup failed, treating posting as new", zap.Error(err))
	}
	if existing != nil {
		log.Info("skipped: already known",
			zap.String("title", details.Title),
			zap.String("company", details.Company.Name))
		return outcomeSkipped
	}

	key := p.Files.Key(details.Title, details.Company.Name)
	if _, err := p.Files.SaveRaw(key, posting.RawText); err != nil {
		log.Warn("failed to save raw posting", zap.Error(err))
		return outcomeFailed
	}
	if _, err := p.Files.SaveProcessed(key, &store.ProcessedOffer{
		URL:     posting.URL,
		Source:  posting.Source,
		Details: *details,
	}); err != nil {
		log.Warn("failed to save processed offer", zap.Error(err))
		return outcomeFailed
	}

	if _, err := p.DB.InsertOffer(ctx, &store.Offer{
		Key:      key,
		URL:      posting.URL,
		Source:   posting.Source,
		Title:    details.Title,
		Company:  details.Company.Name,
		Location: details.Location,
	}); err != nil {
		log.Warn("failed to index offer", zap.Error(err))
	} else if err := p.DB.MarkProcessed(ctx, key); err != nil {
		log.Warn("failed to mark offer processed", zap.Error(err))
	}

	log.Info("posting extracted",
		zap.String("key", key),
		zap.String("title", details.Title),
		zap.String("company", details.Company.Name))
	return outcomeExtracted
}

// GenerateOptions configures a generate run.
type GenerateOptions struct {
	ProfileDir string
	OfferKey   string
	OutputDir  string
	DesignPath string
	Language   string
}

// GenerateResult reports the artifacts of a generate run.
type GenerateResult struct {
	Resume   *types.TailoredResume
	YAMLPath string
	PDFPath  string
}

// RunGenerate loads the candidate profile and a processed offer, tailors the
// resume and renders the PDF.
func (p *Pipeline) RunGenerate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	candidate, err := profile.Load(opts.ProfileDir)
	if err != nil {
		return nil, err
	}
	p.Log.Info("profile loaded",
		zap.String("dir", opts.ProfileDir),
		zap.String("name", candidate.Name))

	offer, err := p.Files.LoadProcessed(opts.OfferKey)
	if err != nil {
		return nil, err
	}
	p.Log.Info("offer loaded",
		zap.String("key", opts.OfferKey),
		zap.String("title", offer.Details.Title),
		zap.String("company", offer.Details.Company.Name))

	resume, err := tailoring.Tailor(ctx, p.Client, candidate, &offer.Details, tailoring.Options{
		Language: opts.Language,
	})
	if err != nil {
		return nil, err
	}
	p.Log.Info("resume tailored",
		zap.Int("experience_entries", len(resume.Experience)),
		zap.Int("education_entries", len(resume.Education)),
		zap.String("summary", logger.Truncate(resume.ProfessionalSummary, 80)))

	design, err := rendering.LoadDesign(opts.DesignPath)
	if err != nil {
		return nil, err
	}

	yamlPath, err := rendering.WriteInput(resume, design, opts.OutputDir)
	if err != nil {
		return nil, err
	}
	p.Log.Info("RenderCV input written", zap.String("path", yamlPath))

	pdfPath, err := rendering.RunRenderCV(ctx, yamlPath, opts.OutputDir)
	if err != nil {
		return nil, err
	}
	p.Log.Info("resume PDF generated", zap.String("path", pdfPath))

	// Tracking only: a failed insert never fails the run.
	if _, err := p.DB.InsertResume(ctx, &store.Resume{
		OfferKey:    opts.OfferKey,
		ProfileName: filepath.Base(opts.ProfileDir),
		YAMLPath:    yamlPath,
		PDFPath:     pdfPath,
		Model:       p.Client.GetModel(llm.TierAdvanced),
	}); err != nil {
		p.Log.Warn("failed to record generated resume", zap.Error(err))
	}

	return &GenerateResult{
		Resume:   resume,
		YAMLPath: yamlPath,
		PDFPath:  pdfPath,
	}, nil
}

// Package pipeline runs one grading pass: extract and classify the key and
// every model sheet, score the models, and write the summary spreadsheet.
package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/GradeByte/config"
	"github.com/jaywantadh/GradeByte/internal/classifier"
	"github.com/jaywantadh/GradeByte/internal/extractor"
	"github.com/jaywantadh/GradeByte/internal/metadata"
	"github.com/jaywantadh/GradeByte/internal/report"
	"github.com/jaywantadh/GradeByte/internal/scorer"
	"github.com/jaywantadh/GradeByte/internal/sheet"
	"github.com/jaywantadh/GradeByte/internal/storage"
)

// RunRecorder persists a summary of each completed run.
type RunRecorder interface {
	PutRun(run metadata.RunRecord) error
}

// Deps are the capabilities a run needs. Archive and History are optional.
type Deps struct {
	Source  extractor.TextSource
	Writer  sheet.Writer
	Archive storage.Storage
	History RunRecorder
	Log     logrus.FieldLogger
}

// Result is what a run produced.
type Result struct {
	RunID    string
	Table    *report.Table
	Warnings []report.Warning
}

// Run grades every configured model against the key. A missing input file
// aborts the run before anything is written.
func Run(cfg *config.AppConfig, deps Deps) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Source == nil || deps.Writer == nil {
		return nil, errors.New("pipeline needs a text source and a writer")
	}
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	run := metadata.NewRunRecord(cfg.Questions, cfg.KeyPath)
	log = log.WithField("run", run.ID)

	key, err := parseDocument(deps.Source, cfg.KeyPath, classifier.VariantKey)
	if err != nil {
		return nil, err
	}
	log.WithField("answers", len(key)).Infof("📄 Parsed answer key %s", cfg.KeyPath)

	sheets := make([]classifier.AnswerMap, len(cfg.Models))
	for i, m := range cfg.Models {
		variant, err := classifier.ParseVariant(m.Variant)
		if err != nil {
			return nil, err
		}
		sheets[i], err = parseDocument(deps.Source, m.Path, variant)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"model": m.Name, "answers": len(sheets[i])}).
			Debugf("Parsed %s", m.Path)
	}

	results := make([]report.ModelResult, len(cfg.Models))
	for i, m := range cfg.Models {
		results[i] = report.ModelResult{
			Name:    m.Name,
			Answers: sheets[i],
			Scores:  scorer.Score(key, sheets[i], cfg.Questions),
		}
	}

	table, warnings := report.Build(results, cfg.Questions)
	for _, w := range warnings {
		log.WithFields(logrus.Fields{"model": w.Model, "missing": w.Missing}).Warn("⚠️ " + w.String())
	}

	if err := deps.Writer.Write(cfg.OutputPath, table); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}
	log.Infof("✅ All scores saved to %s", cfg.OutputPath)

	run.OutputPath = cfg.OutputPath
	avg := table.AverageRow()
	for i, m := range cfg.Models {
		run.Models = append(run.Models, metadata.ModelSummary{
			Name:    m.Name,
			Path:    m.Path,
			Variant: m.Variant,
			Average: avg.Values[i],
			Missing: len(sheets[i].Missing(cfg.Questions)),
		})
	}
	// the spreadsheet is already on disk, so archive and history are best effort
	if deps.Archive != nil {
		if id, err := archive(deps.Archive, cfg.OutputPath); err != nil {
			log.Warnf("failed to archive results: %v", err)
		} else {
			run.ArchiveID = id
			log.WithField("archive_id", id).Debug("Archived results")
		}
	}
	if deps.History != nil {
		if err := deps.History.PutRun(run); err != nil {
			log.Warnf("failed to record run: %v", err)
		}
	}

	return &Result{RunID: run.ID, Table: table, Warnings: warnings}, nil
}

func parseDocument(src extractor.TextSource, path string, v classifier.Variant) (classifier.AnswerMap, error) {
	doc, err := src.Extract(path)
	if err != nil {
		return nil, err
	}
	return classifier.Parse(v, doc.Lines())
}

func archive(s storage.Storage, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.Put(f)
}

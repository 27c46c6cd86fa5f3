package calculator

import (
	"context"
	"fmt"

	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Run cleans table, aggregates it per customer and segments the customers.
// The first failing stage aborts the run.
func Run(ctx context.Context, table models.RawTable, cfg models.Config) (*models.Result, error) {
	res := &models.Result{RunID: uuid.NewString(), RawRows: len(table.Rows)}
	log := logger.Log.WithFields(logrus.Fields{"run_id": res.RunID})

	var bar *progressbar.ProgressBar
	if cfg.Verbose {
		bar = progressbar.Default(3, "rfm")
	} else {
		bar = progressbar.DefaultSilent(3)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txs, err := Clean(table, cfg.Fields)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	res.CleanedRows = len(txs)
	_ = bar.Add(1)
	log.WithFields(logrus.Fields{
		"rows":    res.RawRows,
		"kept":    res.CleanedRows,
		"dropped": res.RawRows - res.CleanedRows,
	}).Debug("cleaned transactions")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, now, err := Aggregate(txs)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	res.ReferenceNow = now
	_ = bar.Add(1)
	log.WithFields(logrus.Fields{
		"customers":     len(rows),
		"reference_now": now.Format("2006-01-02"),
	}).Debug("aggregated rfm table")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err := ComputeQuantiles(rows)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	res.Quantiles = q
	res.Scored = Score(rows, q)
	res.Segments = ExtractSegments(res.Scored)
	_ = bar.Add(1)

	fields := logrus.Fields{"customers": len(res.Scored)}
	for _, name := range models.SegmentOrder {
		fields[string(name)] = len(res.Segments[name])
	}
	log.WithFields(fields).Info("segmentation done")
	return res, nil
}

package main

import (
	"context"
	"log"
	"os"

	"rfm-segments/pkg/calculator"
	"rfm-segments/pkg/config"
	"rfm-segments/pkg/database"
	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"
	"rfm-segments/pkg/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// Optional input path, no flags.
	if len(os.Args) > 1 {
		cfg.Input = os.Args[1]
	}
	logger.Init(cfg)

	ctx := context.Background()
	fields := models.DefaultFieldMap()

	var table models.RawTable
	if cfg.DSN != "" {
		db, driver, err := database.Open(ctx, cfg.DSN)
		if err != nil {
			logger.Log.Fatalf("open db: %v", err)
		}
		defer db.Close()
		logger.Log.Infof("connected driver=%s table=%s", driver, cfg.Table)

		table, err = database.LoadTable(ctx, db, driver, cfg.Table, fields)
		if err != nil {
			logger.Log.Fatalf("load table: %v", err)
		}
	} else {
		logger.Log.Infof("reading %s", cfg.Input)
		table, err = database.LoadFile(cfg.Input, cfg.Sheet)
		if err != nil {
			logger.Log.Fatalf("load file: %v", err)
		}
	}

	res, err := calculator.Run(ctx, table, models.Config{Fields: fields, Verbose: cfg.Verbose})
	if err != nil {
		logger.Log.Fatalf("compute: %v", err)
	}

	if err := report.Render(os.Stdout, res, cfg.TopN); err != nil {
		logger.Log.Fatalf("report: %v", err)
	}
	if cfg.OutputDir != "" {
		path, err := report.ExportJSON(cfg.OutputDir, res)
		if err != nil {
			logger.Log.Fatalf("export: %v", err)
		}
		logger.Log.Infof("exported to %s", path)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

func (c *cli) openRepo() (*sqlite.StatsRepository, error) {
	repo, err := sqlite.NewStatsRepository(c.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	return repo, nil
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every stats row of DATABASE_URL to stdout as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			rows, err := repo.Dump(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(rows)
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load stats rows from a JSON export into DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			var rows []domain.Stats
			if err := json.NewDecoder(f).Decode(&rows); err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}

			repo, err := c.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			count := 0
			for i := range rows {
				if err := repo.Upsert(cmd.Context(), &rows[i]); err != nil {
					c.log.Warn("Failed to import row", zap.String("record_id", rows[i].RecordID), zap.Error(err))
					continue
				}
				count++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d rows\n", count, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

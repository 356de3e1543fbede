package app

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/orkank/AppConfig/internal/daemon"
	"github.com/orkank/AppConfig/internal/transfer"
)

func init() { //nolint: gochecknoinits
	exportCmd.Flags().StringVar(&exportFormat, "format", string(transfer.FormatJSON), "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file, stdout when empty")

	importCmd.Flags().StringVar(&importFile, "file", "", "Document to import")
	importCmd.Flags().StringVar(&importFormat, "format", "", "Document format: json or csv, detected when empty")
	importCmd.Flags().StringVar(&importMode, "mode", string(transfer.ModeAppend), "Import mode: append or replace")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd, importCmd)
}

var (
	exportFormat string
	exportOut    string

	importFile   string
	importFormat string
	importMode   string

	exportCmd = &cobra.Command{
		Use:     "export",
		Short:   "Export all groups and entries",
		PreRunE: func(_ *cobra.Command, _ []string) error { return loadConfig() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := daemon.OpenDB(&cfg)
			if err != nil {
				return err
			}
			defer daemon.CloseDB(db)

			doc, err := transfer.Export(db, time.Now())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()

			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return errors.Wrap(err, "failed to create output file")
				}
				defer func() {
					_ = f.Close()
				}()

				w = f
			}

			format := transfer.DetectFormat(exportOut, transfer.ParseFormat(exportFormat))

			return transfer.Write(w, doc, format)
		},
	}

	importCmd = &cobra.Command{
		Use:     "import",
		Short:   "Import groups and entries from a json or csv document",
		PreRunE: func(_ *cobra.Command, _ []string) error { return loadConfig() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(importFile)
			if err != nil {
				return errors.Wrap(err, "failed to read import file")
			}

			requested := transfer.SniffFormat(data)
			if importFormat != "" {
				requested = transfer.ParseFormat(importFormat)
			}

			doc, err := transfer.Read(bytes.NewReader(data), transfer.DetectFormat(importFile, requested))
			if err != nil {
				return err
			}

			db, err := daemon.OpenDB(&cfg)
			if err != nil {
				return err
			}
			defer daemon.CloseDB(db)

			res, err := transfer.Import(db, doc, transfer.ParseMode(importMode))
			if err != nil {
				return err
			}

			log.Info().
				Int("groups_created", res.GroupsCreated).
				Int("groups_updated", res.GroupsUpdated).
				Int64("groups_deleted", res.GroupsDeleted).
				Int("entries_created", res.EntriesCreated).
				Int("entries_updated", res.EntriesUpdated).
				Int64("entries_deleted", res.EntriesDeleted).
				Msg("import finished")

			cmd.Printf("imported %d groups and %d entries\n",
				res.GroupsCreated+res.GroupsUpdated, res.EntriesCreated+res.EntriesUpdated)

			return nil
		},
	}
)

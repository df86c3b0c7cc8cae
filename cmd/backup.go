/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path"
	"time"

	"github.com/SaiPhaniAnirudh/invoice-manager/config"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/storage"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/spf13/cobra"
)

var backupPrefix string

// backupCmd represents the backup command.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload the collection snapshots to object storage",
	Long: `Uploads the clients, invoices, and users collection snapshots to the
configured object storage backend. Each run writes under a timestamped prefix
unless --prefix is given, so earlier backups are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		st, err := storage.NewFromConfig(cmd.Context(), cfg.Backup)
		if err != nil {
			return fmt.Errorf("init backup storage: %w", err)
		}
		if err := st.EnsureBucket(cmd.Context()); err != nil {
			return fmt.Errorf("ensure bucket: %w", err)
		}

		prefix := backupPrefix
		if prefix == "" {
			prefix = time.Now().UTC().Format("20060102-150405")
		}

		for name, file := range collectionFiles(cfg.DataDir) {
			key := path.Join(prefix, name+".json")
			if err := st.UploadSnapshot(cmd.Context(), key, file); err != nil {
				return err
			}
			fmt.Printf("uploaded %s to %s/%s\n", file, st.Bucket(), key)
		}
		return nil
	},
}

// restoreCmd represents the restore command.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Download collection snapshots from object storage",
	Long: `Downloads the clients, invoices, and users collection snapshots from
the configured object storage backend into the data directory, overwriting
what is there. The server must not be running while a restore is in progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if backupPrefix == "" {
			return fmt.Errorf("--prefix is required for restore")
		}

		cfg := config.LoadConfig()

		st, err := storage.NewFromConfig(cmd.Context(), cfg.Backup)
		if err != nil {
			return fmt.Errorf("init backup storage: %w", err)
		}

		for name, file := range collectionFiles(cfg.DataDir) {
			key := path.Join(backupPrefix, name+".json")
			if err := st.DownloadSnapshot(cmd.Context(), key, file); err != nil {
				return err
			}
			fmt.Printf("restored %s from %s/%s\n", file, st.Bucket(), key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	backupCmd.Flags().StringVar(&backupPrefix, "prefix", "", "object key prefix (defaults to a UTC timestamp)")
	restoreCmd.Flags().StringVar(&backupPrefix, "prefix", "", "object key prefix of the backup to restore")
}

func collectionFiles(dataDir string) map[string]string {
	return map[string]string{
		"users":    store.NewUserRepository(dataDir).Path(),
		"clients":  store.NewClientRepository(dataDir).Path(),
		"invoices": store.NewInvoiceRepository(dataDir).Path(),
	}
}

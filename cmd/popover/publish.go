package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/internal/dev"
	"github.com/vango-dev/popover/internal/publish"
)

func publishCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the built client to S3",
		Long: `Upload main.wasm and wasm_exec.js from the build output to an
S3-compatible bucket. Run 'popover build' first.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN.

Examples:
  popover publish --bucket=assets --prefix=popover/v1
  popover publish --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(bucket, prefix, region)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Bucket name (default from popover.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object key prefix (default from popover.json)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from popover.json or AWS_REGION)")

	return cmd
}

func runPublish(bucket, prefix, region string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	pc := cfg.Publish
	if bucket != "" {
		pc.Bucket = bucket
	}
	if prefix != "" {
		pc.Prefix = prefix
	}
	if region != "" {
		pc.Region = region
	}
	if pc.Region == "" {
		pc.Region = os.Getenv("AWS_REGION")
	}

	client := publish.NewClient(publish.ClientConfig{Region: pc.Region, Endpoint: pc.Endpoint})
	publisher, err := publish.New(client, publish.Options{
		Bucket:       pc.Bucket,
		Prefix:       pc.Prefix,
		CacheControl: pc.CacheControl,
		Logger:       newLogger(),
	})
	if err != nil {
		return err
	}

	compiler := dev.NewCompiler(dev.CompilerConfig{OutputDir: cfg.OutputPath()})
	files := []string{compiler.WasmPath(), compiler.WasmExecPath()}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	objects, err := publisher.Publish(ctx, files)
	for _, obj := range objects {
		success("s3://%s/%s (%s)", pc.Bucket, obj.Key, obj.ContentType)
	}
	return err
}

package main

import (
	"context"
	"log/slog"

	"gistgallery/cmd/gistgallery-cli/commands"
	"gistgallery/lib/telemetry"
	"gistgallery/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "gistgallery-cli")
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	} else {
		defer tel.Shutdown(context.Background())
	}
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}

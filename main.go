package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chaos-io/whitebg/rembg"
	"github.com/chaos-io/whitebg/util"
	"github.com/chaos-io/whitebg/util/logger"
)

const (
	inputPath  = "AOL LOGO 1.png"
	outputPath = "AOL_LOGO_transparent.png"
)

func main() {
	logger.Setup(os.Stderr, false)
	fmt.Println(run(context.Background(), rembg.NewProcessor(), inputPath, outputPath))
}

// run 失败只体现在状态行上，进程总是正常退出
func run(ctx context.Context, p *rembg.Processor, src, dst string) string {
	defer util.Trace("remove background")()

	_, err := p.Process(ctx, src, dst)
	return rembg.Status(err)
}

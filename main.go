package main

import (
	"fmt"
	"os"

	"github.com/decker502/launchpanel/pkg/cli"
	"github.com/decker502/launchpanel/pkg/embedded"
)

func main() {
	// 必须在任何资源加载之前初始化
	embedded.Init(dataFS)

	if err := cli.NewApp().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

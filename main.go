package main

import (
	"flag"
	"log"

	"github.com/decker502/bowling/pkg/app"
	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "外部配置文件路径（默认使用内置 data/bowling.yaml）")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Bowling")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if runErr != nil {
		log.Fatal(runErr)
	}
}

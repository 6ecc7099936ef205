package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/magus/pkg/app"
	"github.com/decker502/magus/pkg/config"
	"github.com/decker502/magus/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(assetsFS)

	// 创建应用
	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 设置窗口属性
	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("%s v%s", config.AppName, config.Version))

	// 启动游戏主循环
	// Update() 返回 ebiten.Termination 时正常退出
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// @title CACEI 统计后端 API
// @version 1.0
// @description 成绩不及格率、退学率与入学周期跟踪的只读统计接口。

// @host localhost:8000
// @BasePath /

package main

import (
	"cacei_stats_backend/internal/app"
	"cacei_stats_backend/internal/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "cacei-stats",
	Short: "CACEI 学业统计服务",
	Long: `读取 estadistica 与 ingenieria 两个库的只读统计服务。

不带子命令运行时等同于 serve。`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "配置文件目录 (包含 config.yaml)")
	rootCmd.AddCommand(serveCmd, catalogCmd, evaluateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	return application.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

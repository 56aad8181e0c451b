package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/meoying/dbdriver/internal/protocol/mysql"
)

// mysqlcli 一个极简的命令行客户端，
// 主要用来在真实服务端上验证协议实现
func main() {
	cfile := pflag.String("config", "", "配置文件路径")
	query := pflag.StringP("execute", "e", "SELECT VERSION()", "要执行的语句")
	pflag.Parse()

	var cfg Config
	if *cfile != "" {
		viper.SetConfigType("yaml")
		viper.SetConfigFile(*cfile)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("初始化读取配置文件失败 %w", err))
		}
		if err := viper.Unmarshal(&cfg); err != nil {
			panic(fmt.Errorf("解析配置文件失败 %w", err))
		}
	}
	if cfg.Addr == "" {
		cfg.Addr = "localhost:3306"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(cfg, *query, logger); err != nil {
		logger.Error("执行失败", "错误", err)
		os.Exit(1)
	}
}

func run(cfg Config, query string, logger *slog.Logger) error {
	var rootCA []byte
	if cfg.RootCA != "" {
		var err error
		if rootCA, err = os.ReadFile(cfg.RootCA); err != nil {
			return fmt.Errorf("读取 CA 证书失败 %w", err)
		}
	}

	conn := mysql.NewConn(&mysql.Config{
		Addr:            cfg.Addr,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.sslMode(),
		RootCAs:         rootCA,
		Compress:        cfg.Compress,
		MultiStatements: cfg.MultiStatements,
		ConnectTimeout:  cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
	}, mysql.WithLogger(logger))

	if err := conn.Open(context.Background()); err != nil {
		return err
	}
	defer conn.Close(true)
	logger.Info("已连接",
		"线程", conn.ThreadId(),
		"版本", conn.ServerVersion().Raw)

	if err := conn.Query(query); err != nil {
		return err
	}
	for {
		res, err := conn.GetResult()
		if err != nil {
			return err
		}
		if res.FieldCount == 0 {
			fmt.Printf("OK，影响行数 %d，自增 id %d\n", res.AffectedRows, res.LastInsertID)
		} else if err = printResult(conn, res.FieldCount); err != nil {
			return err
		}
		if !conn.MoreResults() {
			return nil
		}
	}
}

func printResult(conn *mysql.Conn, fieldCount int) error {
	cols, err := conn.ReadColumns(fieldCount)
	if err != nil {
		return err
	}
	for i, col := range cols {
		if i > 0 {
			fmt.Print("\t")
		}
		fmt.Print(col.Name)
	}
	fmt.Println()

	for {
		more, err := conn.FetchRow(0, fieldCount)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		for i, col := range cols {
			v, err := conn.ReadColumnValue(col)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Print("\t")
			}
			if v == nil {
				fmt.Print("NULL")
			} else {
				fmt.Print(v)
			}
		}
		fmt.Println()
	}
}

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v2"

	"gomarket/internal/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: arquivo .env não encontrado. Usando apenas o ambiente do sistema: %v", err)
	}

	app := &cli.App{
		Name:      "migrate",
		Usage:     "aplica as migrações do armazenamento PostgreSQL (goose)",
		ArgsUsage: "[up|down|status|redo|version|reset] [args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "./sql",
				Usage:   "diretório com os arquivos de migração",
				EnvVars: []string{"MIGRATIONS_DIR"},
			},
			&cli.StringFlag{
				Name:     "dsn",
				Usage:    "URL de conexão do PostgreSQL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   5 * time.Second,
				Usage:   "timeout do ping inicial",
				EnvVars: []string{"DB_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "mostra o log do goose",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("goose: %v", err)
	}
}

func run(c *cli.Context) error {
	db, err := database.NewPostgresDB(c.String("dsn"), c.Duration("timeout"))
	if err != nil {
		return fmt.Errorf("falha ao conectar ao DB: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if !c.Bool("verbose") {
		goose.SetLogger(goose.NopLogger())
	}

	command := "up"
	var args []string
	if c.NArg() > 0 {
		command = c.Args().First()
		args = c.Args().Tail()
	}

	if err := goose.Run(command, db, c.String("dir"), args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	fmt.Printf("goose %s success\n", command)
	return nil
}

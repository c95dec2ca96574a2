package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gorm.io/gorm"

	"financehub/internal/catalog"
	"financehub/internal/config"
	"financehub/internal/database"
	"financehub/internal/logger"
	"financehub/internal/services"
)

// opener returns a migrated database and a func releasing it.
type opener func() (*gorm.DB, func() error, error)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, openDatabase); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, open opener) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address used to log in")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> -email <email> [-password <password>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	db, closeDB, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	cat := catalog.Default()
	if path := config.Get().CatalogFile; path != "" {
		if cat, err = catalog.Load(path); err != nil {
			return fmt.Errorf("failed to load category catalog: %w", err)
		}
	}

	users := services.NewUserService(db, services.NewCategoryService(db, cat))
	user, err := users.Register(*username, *email, password)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s <%s> created with ID %s\n", user.Username, user.Email, user.ID)
	return nil
}

func openDatabase() (*gorm.DB, func() error, error) {
	cfg, err := database.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load database config: %w", err)
	}
	m, err := database.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := m.RunMigrations(); err != nil {
		_ = m.Close()
		return nil, nil, err
	}
	return m.DB(), m.Close, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Package cli is the MindWell admin tool. It talks to the database directly
// through the server's services, so it honours the same validation rules as
// the REST API.
//
// Usage:
//
//	mindwell-cli <command> [operands] [-d dsn] [-c config.json]
//
// Commands: create-user [email [full name...]], list-users,
// confidence <userId>, append <userId> <date> <sentiment> <confidence>,
// set-avatar <userId> <image file>.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/netx"
	"github.com/dmitrijs2005/mindwell/internal/server/config"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindwell/internal/server/services"
)

// ErrUsage is returned for unknown commands or wrong operand counts.
var ErrUsage = errors.New("usage: mindwell-cli create-user [email [full name]] | list-users | confidence <userId> | append <userId> <date> <sentiment> <confidence> | set-avatar <userId> <file>")

type UserAdmin interface {
	Signup(ctx context.Context, fullName, email, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
}

type Journal interface {
	AppendSentiment(ctx context.Context, userID string, in services.SentimentInput) (*models.User, error)
	ConfidenceSeries(ctx context.Context, userID string) ([]float64, error)
}

type Avatars interface {
	PresignUpload(ctx context.Context, userID string) (key string, url string, err error)
}

type App struct {
	users   UserAdmin
	journal Journal
	avatars Avatars
	reader  *bufio.Reader
	out     io.Writer
	stdinFd int
	db      *sql.DB
}

// Seams for tests.
var (
	openDB   = repomanager.OpenDB
	upload   = netx.UploadToPresignedURL
	readFile = os.ReadFile
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		users:   services.NewUserService(db, rm, c),
		journal: services.NewJournalService(db, rm),
		avatars: services.NewAvatarService(db, rm, c),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		stdinFd: int(os.Stdin.Fd()),
		db:      db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run executes the command named by args[0]. Operands follow the command;
// anything from the first flag on belongs to the config loader.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	cmd, ops := args[0], operands(args[1:])

	switch cmd {
	case "create-user":
		return a.createUser(ctx, ops)
	case "list-users":
		return a.listUsers(ctx)
	case "confidence":
		if len(ops) != 1 {
			return ErrUsage
		}
		return a.confidence(ctx, ops[0])
	case "append":
		if len(ops) != 4 {
			return ErrUsage
		}
		return a.appendSentiment(ctx, ops)
	case "set-avatar":
		if len(ops) != 2 {
			return ErrUsage
		}
		return a.setAvatar(ctx, ops[0], ops[1])
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	default:
		return ErrUsage
	}
}

func operands(args []string) []string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			if _, err := strconv.ParseFloat(arg, 64); err != nil {
				return args[:i]
			}
		}
	}
	return args
}

func (a *App) createUser(ctx context.Context, ops []string) error {
	var email, fullName string
	var err error

	if len(ops) > 0 {
		email = ops[0]
	} else if email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}

	if len(ops) > 1 {
		fullName = strings.Join(ops[1:], " ")
	} else if fullName, err = GetSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}

	pw, err := GetPassword(a.out, a.stdinFd)
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	defer wipe(pw)

	u, err := a.users.Signup(ctx, fullName, email, string(pw))
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			return errors.New(ve.Message)
		case errors.Is(err, common.ErrAlreadyExists):
			return errors.New("user already exists")
		}
		return err
	}

	fmt.Fprintf(a.out, "created user %s (%s)\n", u.ID, u.Email)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	list, err := a.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFULL NAME")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.FullName)
	}
	return tw.Flush()
}

func (a *App) confidence(ctx context.Context, userID string) error {
	series, err := a.journal.ConfidenceSeries(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errors.New("user not found")
		}
		return err
	}
	for _, v := range series {
		fmt.Fprintln(a.out, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return nil
}

func (a *App) appendSentiment(ctx context.Context, ops []string) error {
	conf, err := strconv.ParseFloat(ops[3], 64)
	if err != nil {
		return fmt.Errorf("invalid confidence %q", ops[3])
	}

	u, err := a.journal.AppendSentiment(ctx, ops[0], services.SentimentInput{
		Date:       ops[1],
		Sentiment:  ops[2],
		Confidence: &conf,
	})
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			return errors.New(ve.Message)
		case errors.Is(err, common.ErrorNotFound):
			return errors.New("user not found")
		}
		return err
	}

	fmt.Fprintf(a.out, "appended; %s now has %d entries\n", u.FullName, len(u.Sentiments))
	return nil
}

// setAvatar reserves a new profile picture key for the user and uploads the
// file to it.
func (a *App) setAvatar(ctx context.Context, userID, path string) error {
	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	key, url, err := a.avatars.PresignUpload(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errors.New("user not found")
		}
		return err
	}

	if err := upload(ctx, http.DefaultClient, url, contentTypeFor(path, data), data); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "uploaded %s\n", key)
	return nil
}

func contentTypeFor(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return http.DetectContentType(data)
}

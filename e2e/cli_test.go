package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/othello/internal/api"
	"github.com/mcoot/othello/internal/api/response"
	"github.com/mcoot/othello/internal/factory"
	"github.com/mcoot/othello/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	stateFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	if testing.Short() {
		t.Skip("e2e tests build the CLI binary")
	}

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "othello-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/othello")
	cmd.Dir = findProjectRoot(t)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		stateFile:  filepath.Join(t.TempDir(), "seats.json"),
	}
}

func (r *cliRunner) args(args ...string) []string {
	return append([]string{
		"--server", r.serverURL,
		"--state-file", r.stateFile,
		"--output", "json",
	}, args...)
}

func (r *cliRunner) run(args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, r.args(args...)...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the real HTTP server on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	seed := uint64(1)
	app, err := factory.New(factory.Config{RandomSeed: &seed})
	require.NoError(t, err)

	logger := testutil.NopLogger()
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := api.NewServer(router, cfg, logger)
	require.NoError(t, server.Listen())

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		app.HubManager.CloseAll()
		_ = server.Shutdown(context.Background())
	})

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

func parse[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), output)
	return v
}

func TestCLI_Health(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("health")
	require.NoError(t, err, output)
	assert.Equal(t, "ok", parse[response.HealthResponse](t, output).Status)
}

func TestCLI_PlayAgainstBot(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("new", "--vs", "random", "--rules", "compass")
	require.NoError(t, err, output)
	created := parse[response.CreateGameResponse](t, output)
	id := created.Game.ID
	assert.Equal(t, "compass", created.Game.Board.Rules)

	// Play the first legal move until the game ends or twenty moves pass
	for range 20 {
		output, err = cli.run("moves", id)
		require.NoError(t, err, output)
		legal := parse[response.LegalMovesResponse](t, output)
		if legal.Player == "" {
			break
		}
		require.Equal(t, "black", legal.Player)
		require.NotEmpty(t, legal.Moves)

		output, err = cli.run("move", id, legal.Moves[0].Square)
		require.NoError(t, err, output)
		moved := parse[response.MoveResponse](t, output)
		assert.Equal(t, legal.Moves[0].Square, moved.Move.Position.Square)
	}

	output, err = cli.run("show", id)
	require.NoError(t, err, output)
	game := parse[response.Game](t, output)
	assert.Equal(t, game.Board.MoveCount, len(game.Moves))
	assert.Equal(t, game.Board.MoveCount, game.Counts.Black+game.Counts.White)
}

func TestCLI_Watch(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("new")
	require.NoError(t, err, output)
	id := parse[response.CreateGameResponse](t, output).Game.ID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	watch := exec.CommandContext(ctx, cli.binaryPath, cli.args("watch", id, "--json")...)
	stdout, err := watch.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, watch.Start())
	defer func() {
		cancel()
		_ = watch.Wait()
	}()

	lines := bufio.NewScanner(stdout)
	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"event":"connected"`)

	output, err = cli.run("move", id, "d4")
	require.NoError(t, err, output)

	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"event":"move-played"`)

	output, err = cli.run("abandon", id)
	require.NoError(t, err, output)

	require.True(t, lines.Scan())
	assert.True(t, strings.Contains(lines.Text(), `"event":"game-abandoned"`), lines.Text())
}

func TestCLI_ErrorsAreReported(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("show", "no-such-game")
	require.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_FOUND")

	output, err = cli.run("move", "no-such-game", "d4", "--as", "black")
	require.Error(t, err)
	assert.Contains(t, output, "no seat token saved")
}

// arcade is a retro arcade portal: six terminal games on one tick
// scheduler, a REST backend for accounts and leaderboards, and an SSH
// server for remote play.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade scores <game>     - Show the top 10 for a game
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Start the portal REST backend
//	arcade login             - Get a portal token for remote scores
//	arcade demo <game>       - Headless run with a random bot
//
// Global flags:
//
//	--fps <rate>     - Tick rate for games without their own pacing (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - SQLite database path (overrides the portal config)
//	--config <path>  - Portal config YAML
//	--user <name>    - Score user for local play (default: $USER)
//	--portal <url>   - Keep scores on a remote portal instead of locally
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-portal/internal/games/arkanoid"
	_ "github.com/vovakirdan/arcade-portal/internal/games/connectfour"
	_ "github.com/vovakirdan/arcade-portal/internal/games/pacman"
	_ "github.com/vovakirdan/arcade-portal/internal/games/pang"
	_ "github.com/vovakirdan/arcade-portal/internal/games/snake"
	_ "github.com/vovakirdan/arcade-portal/internal/games/tetris"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagUser       string
	flagPortalURL  string
	flagToken      string
	flagLogFile    string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade portal - retro games in your terminal",
	Long: `Arcade portal runs Snake, Tetris, Pacman, Super Pang, Connect Four and
Arkanoid in the terminal, keeps per-user high scores and leaderboards, and
serves them over SSH and a REST API.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View the top 10 of a game
  serve    - Start SSH server for remote play
  api      - Start the portal REST backend
  login    - Get a token for a remote portal
  demo     - Headless run with a random bot

Examples:
  arcade list
  arcade play tetris --difficulty hard
  arcade menu --user ann
  arcade serve --ssh :2222
  arcade api --addr :8080
  arcade scores pacman`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate for games without their own pacing")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "SQLite database path (overrides the portal config)")
	pf.StringVar(&flagConfig, "config", "", "Path to portal config YAML")
	pf.StringVar(&flagUser, "user", "", "Score user for local play (default: $USER)")
	pf.StringVar(&flagPortalURL, "portal", "", "Portal base URL; scores go there instead of the local database")
	pf.StringVar(&flagToken, "token", "", "Portal bearer token (default: $ARCADE_TOKEN)")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for terminal sessions (default: ~/.arcade/arcade.log)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(demoCmd)
}

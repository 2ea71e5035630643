// Copyright © 2025 The lmnls authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lmnls",
	Short: "lmnls — LMNtal language server and checker",
	Long: `lmnls is a language server and batch checker for LMNtal, the membrane
calculus language. It analyzes link linearity (every plain link must occur
exactly twice in its terminal scope), classifies tokens for editor
highlighting, and builds document outlines for membranes and rules.

Getting started:
  lmnls lsp                    Start the LSP server on stdio
  lmnls lsp --port 7998        Start the LSP server on a TCP port
  lmnls check file.lmn         Check files and print diagnostics

Language overview:
  LMNtal programs are dot-terminated declarations. Atoms start lower-case,
  links start upper-case and must occur exactly twice. Membranes {...}
  nest processes; rules rewrite them:

    r @@ a(X), b(X) :- c(X), d(X).
    cell{ a(X), b(X) }.

  Hyperlinks !H may occur any number of times and resolve only at the
  top level or a rule boundary. Process contexts $p stand for the rest
  of a membrane's contents.

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "lmnls lsp --stdio" for .lmn files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lmnls.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lmnls" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lmnls")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

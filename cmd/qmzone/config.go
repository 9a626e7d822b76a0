/*
 * config.go, part of qmzone.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * qmzone is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName = "qmzone"

	logFileKey    = "log.file"
	logLevelKey   = "log.level"
	logMaxSizeKey = "log.max-size"
	colorKey      = "color"
	radiiFileKey  = "radii.file"

	defaultLogFile    = ".qmzone.log"
	defaultLogLevel   = "info"
	defaultLogMaxSize = 10 //megabytes
	defaultColor      = "auto"

	envPrefix = "QMZONE"
)

//cfgFile holds the --config override; empty means the default lookup.
var cfgFile string

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, configBaseName))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configBaseName)
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(logFileKey, defaultLogFile)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(colorKey, defaultColor)
	viper.SetDefault(radiiFileKey, "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			cobra.CheckErr(err)
		}
	}
}

func parseSlogLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "", "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n)
	}
	return slog.LevelInfo
}

//configureLogger points the default slog logger at a rotating file. The
//commands log around their work; the library packages stay silent and
//report through errors.
func configureLogger() {
	sink := &lumberjack.Logger{
		Filename:   viper.GetString(logFileKey),
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: parseSlogLevel(viper.GetString(logLevelKey)),
	})
	slog.SetDefault(slog.New(handler))
}

//colorEnabled decides whether lipgloss styles end up in the output.
//"always" and "never" are literal; "auto" means only when stdout is a
//terminal.
func colorEnabled() bool {
	switch viper.GetString(colorKey) {
	case "always":
		return true
	case "never":
		return false
	}
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

//bindFlagToConfig wires a cobra flag to a viper key so config file and
//environment values feed the flag default.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(errors.New("flag for config key " + key + " not found"))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Package logging provides structured logging configuration for mockserver.
//
// This package wraps log/slog to provide consistent logging across all
// mockserver components. It supports configurable log levels, output formats
// and an optional rotating log file.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 9001)
//	logger.Error("failed to connect", "error", err)
//
// # Log Levels
//
// Four log levels are supported:
//   - Debug: Detailed information for debugging
//   - Info: General operational information
//   - Warn: Warning conditions that should be addressed
//   - Error: Error conditions that need attention
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// # Log File
//
// Setting Config.File writes every record to the console and to a log file
// rotated by lumberjack. Use Open to get the io.Closer of the file:
//
//	logger, closer := logging.Open(logging.Config{File: "mockserver.log"})
//	defer closer.Close()
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via a setter.
// If no logger is provided, use logging.Nop() for a no-op logger.
package logging

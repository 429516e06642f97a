// Package logger builds configured log/slog loggers through functional
// options: output format (JSON or text), minimum level, destination writer
// and static attributes attached to every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("sportline"),
//	)
//	log.Info("session restored", logger.UserID(user.ID))
//
// Production deployments typically use the defaults (JSON, info level) plus
// a service attribute:
//
//	log := logger.New(logger.WithProduction("sportline"))
package logger

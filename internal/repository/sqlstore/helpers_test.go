package sqlstore

import (
	"io"
	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var eventRowColumns = []string{"id", "nome", "data", "local", "capacidade", "categoria", "preco", "extra", "tipo"}

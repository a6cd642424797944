package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// Las líneas de los documentos se persisten como JSONB en la misma fila del
// documento: se leen y escriben siempre juntas y no se consultan por separado.

func marshalItems(items []entity.DocumentItem) ([]byte, error) {
	if items == nil {
		items = []entity.DocumentItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal document items: %w", err)
	}
	return b, nil
}

func unmarshalItems(raw []byte) ([]entity.DocumentItem, error) {
	var items []entity.DocumentItem
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("unmarshal document items: %w", err)
	}
	return items, nil
}

// openStatusFilter excluye documentos terminales o cancelados de los conteos
// de "pendientes" del tablero.
const openStatusFilter = ` AND status NOT IN ('Done', 'Canceled')`

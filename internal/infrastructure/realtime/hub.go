package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

var _ appinv.Notifier = (*Hub)(nil)

// Hub registro de clientes websocket por tenant. Implementa el Notifier de la
// capa de aplicación: tras cada commit que mueve stock se publica el agregado
// del SKU a los suscriptores del tenant. La entrega es fire-and-forget.
type Hub struct {
	stock repository.StockLevelRepository
	log   *logger.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client es una conexión suscrita. Sin suscripciones explícitas recibe todos
// los SKUs del tenant.
type client struct {
	ownerID string
	conn    *websocket.Conn

	mu   sync.Mutex // serializa escrituras al conn
	subs map[string]struct{}
}

// clientMessage mensajes de control que envía el cliente por el socket.
type clientMessage struct {
	Action string `json:"action"` // subscribe_sku | unsubscribe_sku
	SKU    string `json:"sku"`
}

// stockUpdateEvent sobre del evento realtime.
type stockUpdateEvent struct {
	Event   string                 `json:"event"`
	Payload dto.StockUpdatePayload `json:"payload"`
}

// NewHub construye el hub.
func NewHub(stock repository.StockLevelRepository, log *logger.Logger) *Hub {
	return &Hub{
		stock:   stock,
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// Serve atiende una conexión websocket ya autenticada hasta que se cierre.
// ownerID lo resuelve la capa HTTP desde el JWT, nunca el cliente.
func (h *Hub) Serve(ownerID string, conn *websocket.Conn) {
	if ownerID == "" {
		_ = conn.Close()
		return
	}
	c := &client{
		ownerID: ownerID,
		conn:    conn,
		subs:    make(map[string]struct{}),
	}
	h.register(c)
	defer h.unregister(c)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.log.Debug().Str("owner_id", ownerID).Msg("mensaje websocket inválido, ignorado")
			continue
		}
		c.mu.Lock()
		switch msg.Action {
		case "subscribe_sku":
			if msg.SKU != "" {
				c.subs[msg.SKU] = struct{}{}
			}
		case "unsubscribe_sku":
			delete(c.subs, msg.SKU)
		}
		c.mu.Unlock()
	}
}

// StockChanged publica el stock agregado de un SKU a los clientes del tenant.
// Corre en goroutine propia: el caso de uso no espera la entrega y un fallo
// aquí jamás afecta la transacción ya commiteada.
func (h *Hub) StockChanged(ownerID, sku string) {
	go func() {
		levels, err := h.stock.ListBySKU(ownerID, sku)
		if err != nil {
			h.log.Error().Err(err).Str("sku", sku).Msg("no se pudo leer stock para notificar")
			return
		}
		byLocation := make(map[string]decimal.Decimal, len(levels))
		total := decimal.Zero
		for _, lv := range levels {
			byLocation[lv.Location] = byLocation[lv.Location].Add(lv.Quantity)
			total = total.Add(lv.Quantity)
		}
		event := stockUpdateEvent{
			Event: "stock_update",
			Payload: dto.StockUpdatePayload{
				SKU:        sku,
				Total:      total,
				ByLocation: byLocation,
			},
		}
		raw, err := json.Marshal(event)
		if err != nil {
			h.log.Error().Err(err).Str("sku", sku).Msg("no se pudo serializar evento de stock")
			return
		}
		h.broadcast(ownerID, sku, raw)
	}()
}

func (h *Hub) broadcast(ownerID, sku string, raw []byte) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		if c.ownerID == ownerID && c.wants(sku) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.mu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, raw)
		c.mu.Unlock()
		if err != nil {
			// La conexión murió; el loop de lectura la dará de baja
			h.log.Debug().Err(err).Str("sku", sku).Msg("fallo al enviar evento de stock")
		}
	}
}

func (c *client) wants(sku string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.subs) == 0 {
		return true
	}
	_, ok := c.subs[sku]
	return ok
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

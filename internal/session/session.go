package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// Context datos extraídos de un documento, cargados en memoria para una
// conversación de seguimiento
type Context struct {
	ConversationID string
	Filename       string
	Header         model.ReportHeader
	Events         []model.TimesheetEvent
	Notes          map[string]model.OperationalNotes
	LoadedAt       time.Time
}

// Registry registro en memoria de contextos de conversación activos.
// Seguro para uso concurrente.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Context
}

// NewRegistry crea un registro vacío
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Context)}
}

// Open registra un contexto nuevo y devuelve su identificador de
// conversación
func (r *Registry) Open(filename string, header model.ReportHeader, events []model.TimesheetEvent, notes map[string]model.OperationalNotes) string {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &Context{
		ConversationID: id,
		Filename:       filename,
		Header:         header,
		Events:         events,
		Notes:          notes,
		LoadedAt:       time.Now(),
	}
	return id
}

// Load reemplaza el contexto de una conversación existente con un
// documento nuevo. Las demás conversaciones no se ven afectadas.
func (r *Registry) Load(conversationID, filename string, header model.ReportHeader, events []model.TimesheetEvent, notes map[string]model.OperationalNotes) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[conversationID]; !ok {
		return false
	}
	r.sessions[conversationID] = &Context{
		ConversationID: conversationID,
		Filename:       filename,
		Header:         header,
		Events:         events,
		Notes:          notes,
		LoadedAt:       time.Now(),
	}
	return true
}

// Get contexto por identificador; (nil, false) si no existe o ya cerró
func (r *Registry) Get(conversationID string) (*Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, ok := r.sessions[conversationID]
	return ctx, ok
}

// Close descarta el contexto de una conversación
func (r *Registry) Close(conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, conversationID)
}

// Count conversaciones activas
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Info resumen legible del contexto para presentar al usuario
func (c *Context) Info() string {
	vessel := c.Header.Vessel
	if vessel == "" {
		// caer a la cabecera por hoja de las notas, en orden estable
		names := make([]string, 0, len(c.Notes))
		for name := range c.Notes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if v := c.Notes[name].SheetHeader.Vessel; v != "" {
				vessel = v
				break
			}
		}
	}
	if vessel == "" {
		vessel = "(sin identificar)"
	}

	summary := fmt.Sprintf("Documento %s, buque %s, %d evento(s)", c.Filename, vessel, len(c.Events))
	if first, last, ok := dateRange(c.Events); ok {
		if first == last {
			summary += fmt.Sprintf(", fecha %s", first)
		} else {
			summary += fmt.Sprintf(", período %s a %s", first, last)
		}
	}
	return summary
}

func dateRange(events []model.TimesheetEvent) (first, last string, ok bool) {
	for _, ev := range events {
		if ev.Date == nil {
			continue
		}
		d := *ev.Date
		if !ok {
			first, last, ok = d, d, true
			continue
		}
		if d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}
	return first, last, ok
}

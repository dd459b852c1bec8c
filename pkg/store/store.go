// Package store implementa un contenedor de estado observable: un reductor puro más
// suscriptores que se notifican de forma síncrona tras cada dispatch.
//
// Store no sincroniza: quien lo comparte entre goroutines debe serializar el acceso
// (ver session.Session).
package store

// Reducer función pura de transición.
type Reducer[S, A any] func(state S, action A) S

// Listener recibe el estado anterior y el nuevo tras cada dispatch.
type Listener[S any] func(prev, next S)

type subscription[S any] struct {
	id int
	fn Listener[S]
}

// Store estado actual más suscriptores en orden de registro.
type Store[S, A any] struct {
	state     S
	reduce    Reducer[S, A]
	listeners []subscription[S]
	nextID    int
}

// New crea un store con el estado inicial y el reductor.
func New[S, A any](initial S, reduce Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{state: initial, reduce: reduce}
}

// State devuelve el estado actual.
func (s *Store[S, A]) State() S { return s.state }

// Dispatch aplica la acción, notifica a los suscriptores y devuelve el nuevo estado.
// Un listener puede despachar de nuevo (sobre este u otro store); cada listener ve
// el par prev/next de su propia notificación y debe leer State() si necesita lo último.
func (s *Store[S, A]) Dispatch(action A) S {
	prev := s.state
	s.state = s.reduce(prev, action)
	next := s.state

	listeners := make([]subscription[S], len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		if !s.subscribed(l.id) {
			continue
		}
		l.fn(prev, next)
	}
	return next
}

// Subscribe registra un listener y devuelve la función para darlo de baja.
func (s *Store[S, A]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store[S, A]) subscribed(id int) bool {
	for _, l := range s.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

package interfaces

// Service is implemented by every interface exposing the daemon application
// services, whatever the transport.
type Service interface {
	Start() error
	Stop()
}

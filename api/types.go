// Package api defines the wire-level JSON payloads exchanged with the
// Consul HTTP API. The structs here are plain data carriers; request
// building, response decoding, and error mapping live in the client
// package.
package api

// KVPair is a single entry in the key/value store.
type KVPair struct {
	// Key is the full path of the entry.
	Key string `json:"Key"`
	// Value is the raw entry payload. The server transmits it
	// base64-encoded; the client decodes it before handing it to callers.
	// Both an absent and an empty stored value surface as nil.
	Value []byte `json:"Value"`
	// Flags is the opaque unsigned value attached by writers (0..2^64-1).
	Flags uint64 `json:"Flags"`
	// CreateIndex is the index at which the entry was first written.
	CreateIndex uint64 `json:"CreateIndex"`
	// ModifyIndex is the index of the last write, used for check-and-set.
	ModifyIndex uint64 `json:"ModifyIndex"`
	// LockIndex counts successful lock acquisitions on the entry.
	LockIndex uint64 `json:"LockIndex"`
	// Session holds the session currently owning the entry's lock, if any.
	Session string `json:"Session,omitempty"`
}

// Node is a member of the catalog.
type Node struct {
	// Node is the node name.
	Node string `json:"Node"`
	// Address is the node's advertised IP address.
	Address string `json:"Address"`
	// Meta carries the node's user-defined metadata.
	Meta map[string]string `json:"Meta,omitempty"`
}

// CatalogService is one flattened node/service row returned by
// /v1/catalog/service/{name}.
type CatalogService struct {
	// Node is the node providing the service.
	Node string `json:"Node"`
	// Address is the node address.
	Address string `json:"Address"`
	// ServiceID is the per-node unique service instance identifier.
	ServiceID string `json:"ServiceID"`
	// ServiceName is the registered service name.
	ServiceName string `json:"ServiceName"`
	// ServiceTags lists the instance's tags.
	ServiceTags []string `json:"ServiceTags"`
	// ServiceAddress overrides the node address for this instance when set.
	ServiceAddress string `json:"ServiceAddress,omitempty"`
	// ServicePort is the instance's port.
	ServicePort int `json:"ServicePort"`
	// ServiceMeta carries user-defined service metadata.
	ServiceMeta map[string]string `json:"ServiceMeta,omitempty"`
}

// CatalogNode is the node record plus its service map returned by
// /v1/catalog/node/{node}.
type CatalogNode struct {
	// Node is the node record.
	Node *Node `json:"Node"`
	// Services maps service IDs to the services registered on the node.
	Services map[string]*AgentService `json:"Services"`
}

// CatalogRegistration is the payload for /v1/catalog/register.
type CatalogRegistration struct {
	// Node is the name of the node to register.
	Node string `json:"node"`
	// Address is the node's IP address.
	Address string `json:"address"`
	// Datacenter targets a datacenter other than the agent's own.
	Datacenter string `json:"datacenter,omitempty"`
	// Service optionally registers a service on the node.
	Service *AgentService `json:"service,omitempty"`
	// Check optionally registers a health check on the node.
	Check *HealthCheck `json:"check,omitempty"`
	// WriteRequest carries the ACL token for the write.
	WriteRequest *WriteRequest `json:"WriteRequest,omitempty"`
}

// CatalogDeregistration is the payload for /v1/catalog/deregister. When
// neither ServiceID nor CheckID is set, the whole node is removed.
type CatalogDeregistration struct {
	// Node is the name of the node to deregister from.
	Node string `json:"node"`
	// Datacenter targets a datacenter other than the agent's own.
	Datacenter string `json:"datacenter,omitempty"`
	// ServiceID removes only the named service instance.
	ServiceID string `json:"serviceid,omitempty"`
	// CheckID removes only the named check.
	CheckID string `json:"checkid,omitempty"`
	// WriteRequest carries the ACL token for the write.
	WriteRequest *WriteRequest `json:"WriteRequest,omitempty"`
}

// WriteRequest is the embedded token envelope accepted by catalog writes.
type WriteRequest struct {
	// Token is the ACL token applied to the write.
	Token string `json:"Token"`
}

// HealthCheck is a check record as returned by the health endpoints.
type HealthCheck struct {
	// Node is the node the check runs on.
	Node string `json:"Node"`
	// CheckID is the unique check identifier on that node.
	CheckID string `json:"CheckID"`
	// Name is the human-readable check name.
	Name string `json:"Name"`
	// Status is one of passing, warning, or critical.
	Status string `json:"Status"`
	// Notes is opaque operator-supplied text.
	Notes string `json:"Notes,omitempty"`
	// Output is the last captured check output.
	Output string `json:"Output,omitempty"`
	// ServiceID links the check to a service instance, when applicable.
	ServiceID string `json:"ServiceID,omitempty"`
	// ServiceName is the name of the linked service.
	ServiceName string `json:"ServiceName,omitempty"`
}

// ServiceEntry is one row of /v1/health/service/{name}: the node, the
// service instance, and every check affecting it.
type ServiceEntry struct {
	// Node is the node record.
	Node *Node `json:"Node"`
	// Service is the service instance on the node.
	Service *AgentService `json:"Service"`
	// Checks lists node-level and service-level checks for the instance.
	Checks []*HealthCheck `json:"Checks"`
}

// SessionEntry is a session record.
type SessionEntry struct {
	// ID is the server-assigned session identifier.
	ID string `json:"ID"`
	// Name is the optional human-readable session name.
	Name string `json:"Name,omitempty"`
	// Node is the node the session was created on.
	Node string `json:"Node"`
	// Checks lists the health checks associated with the session.
	Checks []string `json:"Checks"`
	// LockDelay is the lock-delay in nanoseconds, as the server reports it.
	LockDelay int64 `json:"LockDelay"`
	// Behavior is the invalidation behavior: release or delete.
	Behavior string `json:"Behavior,omitempty"`
	// TTL is the session's time-to-live duration string, when set.
	TTL string `json:"TTL,omitempty"`
	// CreateIndex is the index at which the session was created.
	CreateIndex uint64 `json:"CreateIndex"`
}

// ACLEntry is a token record returned by the legacy ACL endpoints.
type ACLEntry struct {
	// ID is the token identifier (the secret).
	ID string `json:"ID"`
	// Name is the optional human-readable token name.
	Name string `json:"Name,omitempty"`
	// Type is either client or management.
	Type string `json:"Type"`
	// Rules is the HCL rule document attached to the token.
	Rules string `json:"Rules,omitempty"`
	// CreateIndex is the index at which the token was created.
	CreateIndex uint64 `json:"CreateIndex"`
	// ModifyIndex is the index of the last token update.
	ModifyIndex uint64 `json:"ModifyIndex"`
}

// UserEvent is a custom event propagated over the gossip layer. Events
// are not replicated through consensus: ordering and delivery are
// best-effort and the index of an event list maps to the newest
// matching event rather than a modification point.
type UserEvent struct {
	// ID is the server-assigned event identifier.
	ID string `json:"ID"`
	// Name is the event name events are filtered on.
	Name string `json:"Name"`
	// Payload is the opaque event body. Transmitted base64-encoded and
	// decoded by the client; keep it small (the gossip layer enforces a
	// payload budget of around 100 bytes).
	Payload []byte `json:"Payload"`
	// NodeFilter is the node-name regexp agents filtered on.
	NodeFilter string `json:"NodeFilter,omitempty"`
	// ServiceFilter is the service-name regexp agents filtered on.
	ServiceFilter string `json:"ServiceFilter,omitempty"`
	// TagFilter is the tag regexp agents filtered on.
	TagFilter string `json:"TagFilter,omitempty"`
	// Version is the event protocol version.
	Version int `json:"Version"`
	// LTime is the Lamport time of the event.
	LTime uint64 `json:"LTime"`
}

// AgentService is a service instance as the local agent sees it.
type AgentService struct {
	// ID is the per-agent unique service instance identifier.
	ID string `json:"ID,omitempty"`
	// Service is the service name.
	Service string `json:"Service"`
	// Tags lists the instance's tags.
	Tags []string `json:"Tags"`
	// Port is the instance's port.
	Port int `json:"Port,omitempty"`
	// Address overrides the node address for this instance when set.
	Address string `json:"Address,omitempty"`
	// Meta carries user-defined service metadata.
	Meta map[string]string `json:"Meta,omitempty"`
}

// AgentCheck is a check as the local agent sees it.
type AgentCheck struct {
	// Node is the agent's node name.
	Node string `json:"Node"`
	// CheckID is the unique check identifier.
	CheckID string `json:"CheckID"`
	// Name is the human-readable check name.
	Name string `json:"Name"`
	// Status is one of passing, warning, or critical.
	Status string `json:"Status"`
	// Notes is opaque operator-supplied text.
	Notes string `json:"Notes,omitempty"`
	// Output is the last captured check output.
	Output string `json:"Output,omitempty"`
	// ServiceID links the check to a service instance, when applicable.
	ServiceID string `json:"ServiceID,omitempty"`
	// ServiceName is the name of the linked service.
	ServiceName string `json:"ServiceName,omitempty"`
}

// AgentMember is one gossip-pool member as reported by /v1/agent/members.
type AgentMember struct {
	// Name is the member's node name.
	Name string `json:"Name"`
	// Addr is the member's gossip address.
	Addr string `json:"Addr"`
	// Port is the member's gossip port.
	Port uint16 `json:"Port"`
	// Tags carries the member's serf tags (role, datacenter, ...).
	Tags map[string]string `json:"Tags"`
	// Status is the serf member status code.
	Status int `json:"Status"`
}

// AgentServiceRegistration is the payload for /v1/agent/service/register.
type AgentServiceRegistration struct {
	// Name is the service name and is required.
	Name string `json:"name"`
	// ID defaults to Name when omitted; must be unique per agent.
	ID string `json:"id,omitempty"`
	// Address defaults to the agent's address when omitted.
	Address string `json:"address,omitempty"`
	// Port is the service port.
	Port int `json:"port,omitempty"`
	// Tags lists the instance's tags.
	Tags []string `json:"tags,omitempty"`
	// Meta carries user-defined service metadata.
	Meta map[string]string `json:"meta,omitempty"`
	// Check optionally attaches a health check to the service.
	Check *CheckDefinition `json:"check,omitempty"`
	// EnableTagOverride permits servers to modify the instance's tags.
	EnableTagOverride bool `json:"enabletagoverride,omitempty"`
}

// AgentCheckRegistration is the payload for /v1/agent/check/register.
type AgentCheckRegistration struct {
	// Name is the check name and is required.
	Name string `json:"name"`
	// ID defaults to Name when omitted; must be unique per agent.
	ID string `json:"id,omitempty"`
	// Notes is opaque human-readable text.
	Notes string `json:"notes,omitempty"`
	// ServiceID associates the check with an existing service instance.
	ServiceID string `json:"serviceid,omitempty"`
	// CheckDefinition describes how the agent runs the check.
	CheckDefinition
}

// SessionSpec describes a session to create via /v1/session/create.
type SessionSpec struct {
	// Name is an optional human-readable session name.
	Name string `json:"name,omitempty"`
	// Node defaults to the agent's own node when omitted.
	Node string `json:"node,omitempty"`
	// Checks associates health checks with the session. When nil the
	// server applies its default (serfHealth).
	Checks []string `json:"checks,omitempty"`
	// LockDelay is the lock-delay in seconds; the server default is 15.
	LockDelay int `json:"-"`
	// Behavior is release (default) or delete and controls what happens
	// to held locks when the session is invalidated.
	Behavior string `json:"behavior,omitempty"`
	// TTL invalidates the session unless renewed within this many
	// seconds. Zero disables the TTL; otherwise it must be in 10..86400.
	TTL int `json:"-"`
}

// ACLSpec describes a token to create or update via the ACL endpoints.
type ACLSpec struct {
	// ID is required for updates and optional for creates.
	ID string `json:"ID,omitempty"`
	// Name is an optional human-readable token name.
	Name string `json:"Name,omitempty"`
	// Type is client (default) or management.
	Type string `json:"Type,omitempty"`
	// Rules is an HCL or JSON encoded rule document.
	Rules string `json:"Rules,omitempty"`
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"pkt.systems/consulq/api"
)

// The agent endpoints operate on the local agent only. They carry no
// index header and no datacenter parameter; an ACL token still applies.

// AgentSelf returns the local agent's configuration and runtime info as
// the server reports it, keyed by section ("Config", "Member", ...).
func (c *Client) AgentSelf(ctx context.Context) (map[string]json.RawMessage, error) {
	env, err := c.get(ctx, "/v1/agent/self", c.aclValues(nil), 0)
	if err != nil {
		return nil, err
	}
	info, err := decodeValue[map[string]json.RawMessage](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.self.error", "error", err)
	}
	return info, err
}

// AgentServices returns the services registered with the local agent,
// keyed by service ID. This reflects the agent's own view, which may
// run ahead of the catalog until anti-entropy syncs.
func (c *Client) AgentServices(ctx context.Context) (map[string]*api.AgentService, error) {
	env, err := c.get(ctx, "/v1/agent/services", c.aclValues(nil), 0)
	if err != nil {
		return nil, err
	}
	services, err := decodeValue[map[string]*api.AgentService](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.services.error", "error", err)
	}
	return services, err
}

// AgentChecks returns the checks the local agent manages, keyed by
// check ID.
func (c *Client) AgentChecks(ctx context.Context) (map[string]*api.AgentCheck, error) {
	env, err := c.get(ctx, "/v1/agent/checks", c.aclValues(nil), 0)
	if err != nil {
		return nil, err
	}
	checks, err := decodeValue[map[string]*api.AgentCheck](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.checks.error", "error", err)
	}
	return checks, err
}

// AgentMembers lists the gossip pool as the local agent sees it. Set
// wan to list the WAN pool instead of the LAN pool.
func (c *Client) AgentMembers(ctx context.Context, wan bool) ([]*api.AgentMember, error) {
	q := c.aclValues(nil)
	if wan {
		q.Set("wan", "1")
	}
	env, err := c.get(ctx, "/v1/agent/members", q, 0)
	if err != nil {
		return nil, err
	}
	members, err := decodeValue[[]*api.AgentMember](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.members.error", "error", err)
	}
	return members, err
}

// AgentMaintenance toggles node maintenance mode, which marks every
// service on the node critical.
func (c *Client) AgentMaintenance(ctx context.Context, enable bool, reason string) (bool, error) {
	q := c.aclValues(nil)
	q.Set("enable", boolString(enable))
	if reason != "" {
		q.Set("reason", reason)
	}
	env, err := c.put(ctx, "/v1/agent/maintenance", q, nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.maintenance.error", "error", err)
	}
	return ok, err
}

// AgentJoin asks the local agent to join the node at address. Set wan
// to join over the WAN pool (servers only).
func (c *Client) AgentJoin(ctx context.Context, address string, wan bool) (bool, error) {
	q := c.aclValues(nil)
	if wan {
		q.Set("wan", "1")
	}
	env, err := c.put(ctx, "/v1/agent/join/"+address, q, nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.join.error", "address", address, "error", err)
	}
	return ok, err
}

// AgentForceLeave transitions a failed member straight to left,
// skipping the usual failure-detection grace period.
func (c *Client) AgentForceLeave(ctx context.Context, node string) (bool, error) {
	env, err := c.put(ctx, "/v1/agent/force-leave/"+node, c.aclValues(nil), nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.force_leave.error", "node", node, "error", err)
	}
	return ok, err
}

// AgentServiceRegister registers a service instance with the local
// agent; anti-entropy propagates it to the catalog.
func (c *Client) AgentServiceRegister(ctx context.Context, reg *api.AgentServiceRegistration) (bool, error) {
	if reg == nil || reg.Name == "" {
		return false, fmt.Errorf("consulq: service registration requires a name")
	}
	body, err := json.Marshal(reg)
	if err != nil {
		return false, fmt.Errorf("consulq: encode service registration: %w", err)
	}
	env, err := c.put(ctx, "/v1/agent/service/register", c.aclValues(nil), body)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.service.register.error", "service", reg.Name, "error", err)
	}
	return ok, err
}

// AgentServiceDeregister removes a service instance from the local
// agent by its ID.
func (c *Client) AgentServiceDeregister(ctx context.Context, serviceID string) (bool, error) {
	env, err := c.put(ctx, "/v1/agent/service/deregister/"+serviceID, c.aclValues(nil), nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.service.deregister.error", "service_id", serviceID, "error", err)
	}
	return ok, err
}

// AgentServiceMaintenance toggles maintenance mode for one service
// instance.
func (c *Client) AgentServiceMaintenance(ctx context.Context, serviceID string, enable bool, reason string) (bool, error) {
	q := c.aclValues(nil)
	q.Set("enable", boolString(enable))
	if reason != "" {
		q.Set("reason", reason)
	}
	env, err := c.put(ctx, "/v1/agent/service/maintenance/"+serviceID, q, nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.service.maintenance.error", "service_id", serviceID, "error", err)
	}
	return ok, err
}

// AgentCheckRegister registers a check with the local agent.
func (c *Client) AgentCheckRegister(ctx context.Context, reg *api.AgentCheckRegistration) (bool, error) {
	if reg == nil || reg.Name == "" {
		return false, fmt.Errorf("consulq: check registration requires a name")
	}
	body, err := json.Marshal(reg)
	if err != nil {
		return false, fmt.Errorf("consulq: encode check registration: %w", err)
	}
	env, err := c.put(ctx, "/v1/agent/check/register", c.aclValues(nil), body)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.check.register.error", "check", reg.Name, "error", err)
	}
	return ok, err
}

// AgentCheckDeregister removes a check from the local agent by its ID.
func (c *Client) AgentCheckDeregister(ctx context.Context, checkID string) (bool, error) {
	env, err := c.put(ctx, "/v1/agent/check/deregister/"+checkID, c.aclValues(nil), nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.check.deregister.error", "check_id", checkID, "error", err)
	}
	return ok, err
}

// AgentCheckPass marks a TTL check passing and resets its clock.
func (c *Client) AgentCheckPass(ctx context.Context, checkID, note string) (bool, error) {
	return c.checkUpdate(ctx, "pass", checkID, note)
}

// AgentCheckWarn marks a TTL check warning and resets its clock.
func (c *Client) AgentCheckWarn(ctx context.Context, checkID, note string) (bool, error) {
	return c.checkUpdate(ctx, "warn", checkID, note)
}

// AgentCheckFail marks a TTL check critical and resets its clock.
func (c *Client) AgentCheckFail(ctx context.Context, checkID, note string) (bool, error) {
	return c.checkUpdate(ctx, "fail", checkID, note)
}

func (c *Client) checkUpdate(ctx context.Context, status, checkID, note string) (bool, error) {
	q := c.aclValues(nil)
	if note != "" {
		q.Set("note", note)
	}
	env, err := c.put(ctx, "/v1/agent/check/"+status+"/"+checkID, q, nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.agent.check.update.error", "check_id", checkID, "status", status, "error", err)
	}
	return ok, err
}

func boolString(b bool) string {
	return strconv.FormatBool(b)
}

package client

import "context"

// StatusLeader returns the Raft leader's address ("ip:port"), or the
// empty string during an election.
func (c *Client) StatusLeader(ctx context.Context) (string, error) {
	env, err := c.get(ctx, "/v1/status/leader", nil, 0)
	if err != nil {
		return "", err
	}
	leader, err := decodeValue[string](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.status.leader.error", "error", err)
	}
	return leader, err
}

// StatusPeers lists the addresses of the Raft peers.
func (c *Client) StatusPeers(ctx context.Context) ([]string, error) {
	env, err := c.get(ctx, "/v1/status/peers", nil, 0)
	if err != nil {
		return nil, err
	}
	peers, err := decodeValue[[]string](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.status.peers.error", "error", err)
	}
	return peers, err
}

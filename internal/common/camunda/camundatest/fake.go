// Package camundatest provides an in-memory job client for handler tests.
package camundatest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// Gateway records the job commands it receives. Commands sent on a finished
// context are rejected. Calls it does not override panic.
type Gateway struct {
	pb.GatewayClient

	mu        sync.Mutex
	completed []*pb.CompleteJobRequest
	thrown    []*pb.ThrowErrorRequest
}

func (g *Gateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completed = append(g.completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (g *Gateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.thrown = append(g.thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}

// JobClient implements worker.JobClient on top of a recording Gateway.
type JobClient struct {
	Gateway *Gateway
}

func NewJobClient() *JobClient {
	return &JobClient{Gateway: &Gateway{}}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.Gateway, noRetry)
}

// Completed returns the variables of the single completed job.
func (c *JobClient) Completed(t testing.TB) map[string]interface{} {
	t.Helper()
	c.Gateway.mu.Lock()
	defer c.Gateway.mu.Unlock()

	require.Len(t, c.Gateway.completed, 1, "expected exactly one completed job")
	require.Empty(t, c.Gateway.thrown, "expected no thrown errors")

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(c.Gateway.completed[0].Variables), &vars))
	return vars
}

// Thrown returns the single BPMN error thrown for the job.
func (c *JobClient) Thrown(t testing.TB) *pb.ThrowErrorRequest {
	t.Helper()
	c.Gateway.mu.Lock()
	defer c.Gateway.mu.Unlock()

	require.Len(t, c.Gateway.thrown, 1, "expected exactly one thrown error")
	require.Empty(t, c.Gateway.completed, "expected no completed jobs")
	return c.Gateway.thrown[0]
}

// NewJob builds an activated job carrying variables.
func NewJob(key int64, taskType string, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                      key,
		Type:                     taskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "ese-registration",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_" + taskType,
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Variables:                string(variablesJSON),
	}}
}

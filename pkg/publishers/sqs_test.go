package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/zillow-connector/internal/domain"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherSendsEvent(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	err := pub.Publish(context.Background(), Event{
		JobID:  "home-value",
		Lookup: domain.Lookup{Operation: "getZestimate", Body: "<z/>"},
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["operation"]
	if !ok || aws.ToString(attr.StringValue) != "getZestimate" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("operation attribute missing or wrong: %#v", attr)
	}
	if _, ok := client.input.MessageAttributes["job_id"]; !ok {
		t.Fatalf("job_id attribute missing")
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"job_id":"home-value"`) {
		t.Fatalf("MessageBody missing job_id: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), Event{JobID: "j"}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestNewSQSPublisherWithStaticCredentials(t *testing.T) {
	pub, err := newSQSPublisher(context.Background(), PublisherConfig{
		ID:   "queue",
		Type: TypeSQS,
		SQS: &SQSPublisherConfig{
			QueueURL: "http://localhost:4566/000000000000/lookups",
			AWSConfig: AWSConfig{
				Region:          "us-east-1",
				Endpoint:        "http://localhost:4566",
				AccessKeyID:     "test",
				SecretAccessKey: "test",
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if pub.ID() != "queue" || pub.Type() != TypeSQS {
		t.Fatalf("unexpected publisher %s/%s", pub.ID(), pub.Type())
	}
}

func TestSQSPublisherRejectsOversizedEvent(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://example.com/queue", client: client, log: noopLogger{}}

	err := pub.Publish(context.Background(), Event{
		JobID:  "comps",
		Lookup: domain.Lookup{Operation: "getComps", Body: strings.Repeat("x", maxAWSMessageBytes)},
	})
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected ErrMessageTooLarge, got %v", err)
	}
	if client.input != nil {
		t.Fatalf("oversized event must not be sent")
	}
}

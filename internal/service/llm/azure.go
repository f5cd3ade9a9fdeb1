package llm

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureClient implements CompletionService on top of the Azure OpenAI
// SDK for deployments that are not reachable as a plain HTTP endpoint.
type AzureClient struct {
	client         *azopenai.Client
	deploymentName string
}

// NewAzureClient creates a completion client for an Azure OpenAI deployment
func NewAzureClient(endpoint, apiKey, deploymentName string) (*AzureClient, error) {
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, err
	}

	return &AzureClient{
		client:         client,
		deploymentName: deploymentName,
	}, nil
}

// Complete sends the prompt through the chat-completions API
func (c *AzureClient) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := applyOptions(opts)

	var messages []azopenai.ChatRequestMessageClassification
	if o.systemPrompt != "" {
		messages = append(messages, &azopenai.ChatRequestSystemMessage{
			Content: azopenai.NewChatRequestSystemMessageContent(o.systemPrompt),
		})
	}
	messages = append(messages, &azopenai.ChatRequestUserMessage{
		Content: azopenai.NewChatRequestUserMessageContent(prompt),
	})

	resp, err := c.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(c.deploymentName),
		Messages:       messages,
		N:              to.Ptr[int32](1),
		Temperature:    to.Ptr(float32(o.temperature)),
		MaxTokens:      to.Ptr(int32(o.maxTokens)),
	}, nil)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Err: errors.New("no choices returned from chat completion")}
	}
	if resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", &CompletionError{Err: errors.New("chat completion returned empty message")}
	}
	return *resp.Choices[0].Message.Content, nil
}

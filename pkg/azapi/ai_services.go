package azapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
)

const aiServicesKind = "AIServices"

// GetAIServicesAccount finds the AI Services account within a resource group.
// Returns nil (not an error) when the account does not exist.
func (cli *AzureClient) GetAIServicesAccount(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
	accountName string,
) (*armcognitiveservices.Account, error) {
	client, err := cli.createCognitiveAccountClient(subscriptionId)
	if err != nil {
		return nil, err
	}

	res, err := client.Get(ctx, resourceGroupName, accountName, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("getting AI Services account %s: %w", accountName, err)
	}

	return &res.Account, nil
}

// CreateAIServicesAccount provisions an AI Services account and waits for the
// deployment to complete so the project endpoint is available to callers.
func (cli *AzureClient) CreateAIServicesAccount(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
	accountName string,
	location string,
	tags map[string]*string,
) (*armcognitiveservices.Account, error) {
	client, err := cli.createCognitiveAccountClient(subscriptionId)
	if err != nil {
		return nil, err
	}

	poller, err := client.BeginCreate(ctx, resourceGroupName, accountName, armcognitiveservices.Account{
		Kind:     convert.RefOf(aiServicesKind),
		Location: &location,
		Tags:     tags,
		SKU: &armcognitiveservices.SKU{
			Name: convert.RefOf("S0"),
		},
		Identity: &armcognitiveservices.Identity{
			Type: convert.RefOf(armcognitiveservices.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcognitiveservices.AccountProperties{
			CustomSubDomainName: &accountName,
			PublicNetworkAccess: convert.RefOf(armcognitiveservices.PublicNetworkAccessEnabled),
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("starting AI Services account creation: %w", err)
	}

	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("creating AI Services account %s: %w", accountName, err)
	}

	return &res.Account, nil
}

// DeleteAIServicesAccount deletes the account and waits for completion.
func (cli *AzureClient) DeleteAIServicesAccount(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
	accountName string,
) error {
	client, err := cli.createCognitiveAccountClient(subscriptionId)
	if err != nil {
		return err
	}

	poller, err := client.BeginDelete(ctx, resourceGroupName, accountName, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil
		}

		return fmt.Errorf("beginning AI Services account deletion: %w", err)
	}

	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("deleting AI Services account %s: %w", accountName, err)
	}

	return nil
}

func (cli *AzureClient) createCognitiveAccountClient(
	subscriptionId string,
) (*armcognitiveservices.AccountsClient, error) {
	client, err := armcognitiveservices.NewAccountsClient(subscriptionId, cli.credential, cli.armOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Cognitive Services client: %w", err)
	}

	return client, nil
}

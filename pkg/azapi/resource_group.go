package azapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// ResourceGroupExists reports whether a resource group with the given name
// exists in the subscription. Existence is decided by name only.
func (cli *AzureClient) ResourceGroupExists(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
) (bool, error) {
	client, err := cli.createResourceGroupClient(subscriptionId)
	if err != nil {
		return false, err
	}

	res, err := client.CheckExistence(ctx, resourceGroupName, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return false, nil
		}

		return false, fmt.Errorf("checking resource group %s: %w", resourceGroupName, err)
	}

	return res.Success, nil
}

func (cli *AzureClient) CreateOrUpdateResourceGroup(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
	location string,
	tags map[string]*string,
) error {
	client, err := cli.createResourceGroupClient(subscriptionId)
	if err != nil {
		return err
	}

	_, err = client.CreateOrUpdate(ctx, resourceGroupName, armresources.ResourceGroup{
		Location: &location,
		Tags:     tags,
	}, nil)

	return err
}

// ListResourceGroups returns the resource groups whose name starts with the
// given prefix. Used by teardown to enumerate the starter footprint.
func (cli *AzureClient) ListResourceGroups(
	ctx context.Context,
	subscriptionId string,
	namePrefix string,
) ([]string, error) {
	client, err := cli.createResourceGroupClient(subscriptionId)
	if err != nil {
		return nil, err
	}

	groups := []string{}
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing resource groups: %w", err)
		}

		for _, group := range page.ResourceGroupListResult.Value {
			if group.Name == nil {
				continue
			}
			if namePrefix == "" || strings.HasPrefix(*group.Name, namePrefix) {
				groups = append(groups, *group.Name)
			}
		}
	}

	return groups, nil
}

// DeleteResourceGroup starts the resource group deletion without waiting for
// it to complete. Resource group deletion can take many minutes and the
// original workflow treats it as fire and forget.
func (cli *AzureClient) DeleteResourceGroup(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
) error {
	client, err := cli.createResourceGroupClient(subscriptionId)
	if err != nil {
		return err
	}

	_, err = client.BeginDelete(ctx, resourceGroupName, nil)

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
		return nil
	}

	if err != nil {
		return fmt.Errorf("beginning resource group deletion: %w", err)
	}

	return nil
}

func (cli *AzureClient) createResourceGroupClient(subscriptionId string) (*armresources.ResourceGroupsClient, error) {
	client, err := armresources.NewResourceGroupsClient(subscriptionId, cli.credential, cli.armOptions)
	if err != nil {
		return nil, fmt.Errorf("creating ResourceGroup client: %w", err)
	}

	return client, nil
}

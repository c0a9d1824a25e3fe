package loupe

import (
	"context"
	"net/http"
)

// GetTenants возвращает арендаторов, доступных пользователю.
func (c *APIClient) GetTenants(ctx context.Context) (*TenantsForUserResponse, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return invoke[TenantsForUserResponse](ctx, c, token, http.MethodGet, "Tenant/ForUser", APIOptions{}, nil)
}

// GetApplications возвращает все пары продукт/приложение арендатора.
func (c *APIClient) GetApplications(ctx context.Context, tenant string) (*ApplicationsResponse, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return invoke[ApplicationsResponse](ctx, c, token, http.MethodGet,
		"Application/AllProductsAndApplications", APIOptions{Tenant: tenant}, nil)
}

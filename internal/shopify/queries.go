package shopify

// Documents GraphQL utilisés par le storefront. Toutes les valeurs passent
// par les variables GraphQL, jamais par interpolation de strings.

const CollectionProductsQuery = `
query CollectionProducts(
  $handle: String!
  $first: Int!
  $after: String
  $sortKey: ProductCollectionSortKeys
  $reverse: Boolean
  $filters: [ProductFilter!]
) {
  collectionByHandle(handle: $handle) {
    products(
      first: $first
      after: $after
      sortKey: $sortKey
      reverse: $reverse
      filters: $filters
    ) {
      pageInfo { hasNextPage endCursor }
      filters {
        id
        label
        type
        values { label count input }
      }
      edges {
        node {
          id
          title
          handle
          featuredImage { url }
          images(first: 20) {
            edges {
              node {
                url
                altText
              }
            }
          }
          variants(first: 200) {
            edges {
              node {
                id
                price { amount }
                compareAtPrice { amount }
                availableForSale
                quantityAvailable
                selectedOptions { name value }
                image {
                  url
                  altText
                }
              }
            }
          }
        }
      }
    }
  }
}`

const CollectionFiltersQuery = `
query CollectionFilters($handle: String!) {
  collectionByHandle(handle: $handle) {
    products(first: 1) {
      filters {
        id
        label
        type
        values {
          id
          label
          count
          input
        }
      }
    }
  }
}`

// Compte total de produits d'une collection, via l'API Admin (l'API
// Storefront n'expose pas productsCount).
const CollectionProductCountQuery = `
query CollectionProductCount($query: String!) {
  collections(first: 1, query: $query) {
    edges {
      node {
        productsCount { count }
      }
    }
  }
}`

const CustomerAccessTokenCreateMutation = `
mutation CustomerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken {
      accessToken
      expiresAt
    }
    customerUserErrors {
      message
    }
  }
}`

const CartCreateMutation = `
mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      id
      totalQuantity
    }
  }
}`

const CartBuyerIdentityUpdateMutation = `
mutation CartBuyerIdentityUpdate($cartId: ID!, $buyerIdentity: CartBuyerIdentityInput!) {
  cartBuyerIdentityUpdate(cartId: $cartId, buyerIdentity: $buyerIdentity) {
    cart {
      id
      totalQuantity
    }
  }
}`

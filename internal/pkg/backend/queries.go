package backend

const getEntitiesQuery = `query getEntities($id: String!, $orderBy: EntityOrderByInput, $whereName: StringFilter) {
  entities(where: {app: {id: $id}, displayName: $whereName}, orderBy: $orderBy) {
    id
    name
    displayName
    description
    lockedByUserId
    lockedAt
    lockedByUser {
      id
      account {
        firstName
        lastName
      }
    }
    versions(take: 1, orderBy: {versionNumber: Desc}) {
      versionNumber
      commit {
        userId
        message
        createdAt
        user {
          id
          account {
            firstName
            lastName
          }
        }
      }
    }
  }
}`

const createEntityMutation = `mutation createEntity($data: EntityCreateInput!) {
  createOneEntity(data: $data) {
    id
    name
    displayName
    description
    versions(take: 1, orderBy: {versionNumber: Desc}) {
      versionNumber
    }
  }
}`

const enableSyncMutation = `mutation appEnableSyncWithGithubRepo($githubRepo: String!, $githubBranch: String, $appId: String!) {
  appEnableSyncWithGithubRepo(data: {githubRepo: $githubRepo, githubBranch: $githubBranch}, where: {id: $appId}) {
    id
    githubSyncEnabled
    githubRepo
    githubBranch
  }
}`

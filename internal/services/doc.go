// Package services 提供应用的领域服务层，封装对上游 HTTP 服务的调用逻辑。
// 该层对 handlers 提供较为稳定的接口，避免在 HTTP 层直接拼装上游请求细节。
package services

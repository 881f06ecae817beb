// Package handlers 暴露 HTTP 层接口，负责路由注册、请求校验与服务编排。
// handlers 内部聚焦输入/输出转换，并委托 services 层完成上游调用。
package handlers
